package service

import (
	"errors"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	authutil "reviewhub/internal/middleware/auth"

	"gorm.io/gorm"
)

// UserUpdates is the set of optional PATCH fields; nil means "leave unchanged".
type UserUpdates struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
	Password  *string
}

type UserService interface {
	List(search string, limit, offset int) ([]models.User, int64, error)
	Create(user *models.User, password string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(username string, updates UserUpdates) (*models.User, error)
	UpdateSelf(user *models.User, updates UserUpdates) (*models.User, error)
	Delete(username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(search string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(search, limit, offset)
}

// Create is the admin path: any role may be assigned, the "me" prohibition
// applies to self-signup only.
func (s *userService) Create(user *models.User, password string) (*models.User, error) {
	ve := ValidationError{}
	if !usernamePattern.MatchString(user.Username) {
		ve.Add("username", "Enter a valid username: letters, digits and @/./+/-/_ only.")
	}
	if user.Role != "" && !models.ValidRole(user.Role) {
		ve.Add("role", "Role must be one of: user, moderator, admin.")
	}

	if _, err := s.userRepo.FindByUsername(user.Username); err == nil {
		ve.Add("username", "A user with the same 'username' already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(user.Email); err == nil {
		ve.Add("email", "A user with the same 'email' already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if password != "" {
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("username", "A user with the same 'username' or 'email' already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update is the admin path, keyed by username; role changes are allowed.
func (s *userService) Update(username string, updates UserUpdates) (*models.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.apply(user, updates)
}

// UpdateSelf ignores a submitted role: users cannot self-escalate.
func (s *userService) UpdateSelf(user *models.User, updates UserUpdates) (*models.User, error) {
	updates.Role = nil
	return s.apply(user, updates)
}

func (s *userService) Delete(username string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(user)
}

func (s *userService) apply(user *models.User, updates UserUpdates) (*models.User, error) {
	ve := ValidationError{}

	if updates.Username != nil && *updates.Username != user.Username {
		if !usernamePattern.MatchString(*updates.Username) {
			ve.Add("username", "Enter a valid username: letters, digits and @/./+/-/_ only.")
		} else if other, err := s.userRepo.FindByUsername(*updates.Username); err == nil && other.ID != user.ID {
			ve.Add("username", "A user with the same 'username' already exists.")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *updates.Username
	}
	if updates.Email != nil && *updates.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(*updates.Email); err == nil && other.ID != user.ID {
			ve.Add("email", "A user with the same 'email' already exists.")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *updates.Email
	}
	if updates.Role != nil {
		if !models.ValidRole(*updates.Role) {
			ve.Add("role", "Role must be one of: user, moderator, admin.")
		}
		user.Role = *updates.Role
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if updates.FirstName != nil {
		user.FirstName = *updates.FirstName
	}
	if updates.LastName != nil {
		user.LastName = *updates.LastName
	}
	if updates.Bio != nil {
		user.Bio = *updates.Bio
	}
	if updates.Password != nil {
		hash, err := authutil.HashPassword(*updates.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("username", "A user with the same 'username' or 'email' already exists.")
		}
		return nil, err
	}
	return user, nil
}
