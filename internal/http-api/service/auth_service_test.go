package service

import (
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	authutil "reviewhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameAndEmail(username, email string) (*models.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(search string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) StampLastLogin(user *models.User, at time.Time) error {
	args := m.Called(user, at)
	return args.Error(0)
}

// MockSender mocks the mail.Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendConfirmationCode(email, code string) error {
	args := m.Called(email, code)
	return args.Error(0)
}

func newTestAuthService(userRepo *MockUserRepository, sender *MockSender) AuthService {
	cfg := &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret!",
		JWTExpiry: 24 * time.Hour,
	}
	return NewAuthService(userRepo, sender, cfg)
}

func TestSignup_NewUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	mockUserRepo.On("FindByUsernameAndEmail", "alice", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	mockSender.On("SendConfirmationCode", "alice@example.com", mock.AnythingOfType("string")).Return(nil)

	user, err := authService.Signup("alice", "alice@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	mockUserRepo.AssertExpectations(t)
	mockSender.AssertExpectations(t)
}

func TestSignup_ExistingPairResendsCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	existing := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsernameAndEmail", "alice", "alice@example.com").Return(existing, nil)
	mockSender.On("SendConfirmationCode", "alice@example.com", mock.AnythingOfType("string")).Return(nil)

	user, err := authService.Signup("alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, existing, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockSender.AssertExpectations(t)
}

func TestSignup_MeProhibited(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	for _, username := range []string{"me", "Me", "ME", "mE"} {
		_, err := authService.Signup(username, "me@example.com")

		var ve ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Contains(t, ve, "username")
	}
}

func TestSignup_InvalidUsernameCharacters(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	_, err := authService.Signup("bad name!", "bad@example.com")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "username")
}

func TestSignup_UsernameTaken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	taken := &models.User{ID: "u-1", Username: "alice", Email: "other@example.com"}
	mockUserRepo.On("FindByUsernameAndEmail", "alice", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "alice").Return(taken, nil)
	mockUserRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := authService.Signup("alice", "alice@example.com")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "username")
	assert.NotContains(t, ve, "email")
}

func TestSignup_EmailTaken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	taken := &models.User{ID: "u-1", Username: "other", Email: "alice@example.com"}
	mockUserRepo.On("FindByUsernameAndEmail", "alice", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "alice@example.com").Return(taken, nil)

	_, err := authService.Signup("alice", "alice@example.com")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "email")
	assert.NotContains(t, ve, "username")
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSignup_CreateRaceTranslated(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	mockUserRepo.On("FindByUsernameAndEmail", "alice", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)

	_, err := authService.Signup("alice", "alice@example.com")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "username")
}

func TestIssueToken_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	mockUserRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := authService.IssueToken("ghost", "whatever")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueToken_WrongCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com"}
	mockUserRepo.On("FindByUsername", "alice").Return(user, nil)

	_, err := authService.IssueToken("alice", "not-the-code")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "confirmation_code")
	mockUserRepo.AssertNotCalled(t, "StampLastLogin", mock.Anything, mock.Anything)
}

func TestIssueToken_ValidCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	code := authutil.MakeConfirmationCode("test-secret-test-secret-test-secret!", user)

	mockUserRepo.On("FindByUsername", "alice").Return(user, nil)
	mockUserRepo.On("StampLastLogin", user, mock.AnythingOfType("time.Time")).Return(nil)

	token, err := authService.IssueToken("alice", code)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockUserRepo.AssertExpectations(t)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	_, err := authService.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
