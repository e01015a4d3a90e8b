package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xeralabs/rize-engine/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "test_success@rize.live",
			Handle:   "test_success",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.Equal(t, input.Handle, user.Handle)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "not-an-email", Handle: "valid_handle", Password: "StrongPassword123!"}

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for invalid handle", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "valid@rize.live", Handle: "no spaces!", Password: "StrongPassword123!"}

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrInvalidHandle)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "valid@rize.live", Handle: "valid_handle", Password: "short"}

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "duplicate@rize.live", Handle: "duplicate", Password: "StrongPassword123!"}

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)

		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newStoredUser := func(t *testing.T, password string) *domain.User {
		t.Helper()
		user, err := domain.NewUser("user-1", "login@rize.live", "login_user")
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword(password))
		return user
	}

	t.Run("Success: Should return user for valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		stored := newStoredUser(t, "StrongPassword123!")
		mockRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil)

		user, err := service.Login(ctx, LoginInput{Email: stored.Email, Password: "StrongPassword123!"})

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("Fail: Wrong password returns ErrInvalidCredentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		stored := newStoredUser(t, "StrongPassword123!")
		mockRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil)

		user, err := service.Login(ctx, LoginInput{Email: stored.Email, Password: "wrong-password"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("Fail: Unknown email is indistinguishable from wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "ghost@rize.live").Return(nil, domain.ErrUserNotFound)

		user, err := service.Login(ctx, LoginInput{Email: "ghost@rize.live", Password: "whatever123"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}
