package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/mail"
	authutil "reviewhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Claims are the bearer-token payload: identity only, role included for
// logging; permission checks always reload the user record.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(username, email string) (*models.User, error)
	IssueToken(username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	sender    mail.Sender
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sender mail.Sender, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		sender:    sender,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Signup registers a user (or re-uses the exact existing username/email pair)
// and dispatches a confirmation code to the submitted email address.
func (s *authService) Signup(username, email string) (*models.User, error) {
	ve := ValidationError{}
	if !usernamePattern.MatchString(username) {
		ve.Add("username", "Enter a valid username: letters, digits and @/./+/-/_ only.")
	}
	if strings.EqualFold(username, "me") {
		ve.Add("username", "\"me\" is not allowed as a username.")
	}
	if len(ve) > 0 {
		return nil, ve
	}

	// Exact (username, email) pair: idempotent hit, resend the code.
	user, err := s.userRepo.FindByUsernameAndEmail(username, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			ve.Add("username", "A user with the same 'username' already exists.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			ve.Add("email", "A user with the same 'email' already exists.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if len(ve) > 0 {
			return nil, ve
		}

		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			// Lost a concurrent signup race: the unique index fired.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, NewValidationError("username", "A user with the same 'username' or 'email' already exists.")
			}
			return nil, err
		}
	}

	code := authutil.MakeConfirmationCode(s.jwtSecret, user)
	if err := s.sender.SendConfirmationCode(user.Email, code); err != nil {
		return nil, err
	}

	return user, nil
}

// IssueToken exchanges a valid confirmation code for a signed bearer token
// and stamps last_login, consuming the code.
func (s *authService) IssueToken(username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !authutil.CheckConfirmationCode(s.jwtSecret, user, confirmationCode) {
		return "", NewValidationError("confirmation_code", "Invalid confirmation code.")
	}

	if err := s.userRepo.StampLastLogin(user, time.Now()); err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token string.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
