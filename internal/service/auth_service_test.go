package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"userdir/internal/auth"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, skip, limit int64) ([]model.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func validRegisterRequest() *model.CreateUserRequest {
	return &model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Role:     "user",
		Status:   "active",
	}
}

func TestAuthService_Register(t *testing.T) {
	createdID := bson.NewObjectID()

	tests := []struct {
		name          string
		mutate        func(*model.CreateUserRequest)
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "successful registration",
			mutate: func(req *model.CreateUserRequest) {},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, apperrors.ErrUserNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = createdID
				}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate email",
			mutate: func(req *model.CreateUserRequest) {
				req.Email = "existing@example.com"
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name: "email lookup is lowercased",
			mutate: func(req *model.CreateUserRequest) {
				req.Email = "Existing@Example.COM"
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, NewUserValidator())

			req := validRegisterRequest()
			tt.mutate(req)

			user, token, err := service.Register(context.Background(), req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.Equal(t, model.DefaultProfilePhoto, user.ProfilePhoto)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "password123", user.PasswordHash)

				// Token carries the created identity.
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, createdID.Hex(), claims.UserID)
				assert.Equal(t, model.RoleUser, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*model.CreateUserRequest)
		expectedMessage string
	}{
		{
			name: "name too short",
			mutate: func(req *model.CreateUserRequest) {
				req.Name = "A"
			},
			expectedMessage: "Name must be at least 2 characters long.",
		},
		{
			name: "invalid email",
			mutate: func(req *model.CreateUserRequest) {
				req.Email = "not-an-email"
			},
			expectedMessage: "A valid email is required.",
		},
		{
			name: "password too short",
			mutate: func(req *model.CreateUserRequest) {
				req.Password = "12345"
			},
			expectedMessage: "Password must be at least 6 characters long.",
		},
		{
			name: "unknown role",
			mutate: func(req *model.CreateUserRequest) {
				req.Role = "root"
			},
			expectedMessage: `Role must be either "admin" or "user".`,
		},
		{
			name: "unknown status",
			mutate: func(req *model.CreateUserRequest) {
				req.Status = "paused"
			},
			expectedMessage: `Status must be either "active" or "inactive".`,
		},
		{
			name: "name reported before email when both invalid",
			mutate: func(req *model.CreateUserRequest) {
				req.Name = ""
				req.Email = "broken"
			},
			expectedMessage: "Name must be at least 2 characters long.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), NewUserValidator())

			req := validRegisterRequest()
			tt.mutate(req)

			user, token, err := service.Register(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, user)
			assert.Empty(t, token)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedMessage, vErr.Message)

			// Nothing reaches the repository on invalid input.
			mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	require.NoError(t, err)

	stored := &model.User{
		ID:           bson.NewObjectID(),
		Email:        "test@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: nil,
		},
		{
			name:     "mixed-case email resolves the same account",
			email:    "Test@Example.COM",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, NewUserValidator())

			token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID.Hex(), claims.UserID)
				assert.Equal(t, model.RoleUser, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_InactiveUserStillAuthenticates(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "inactive@example.com").Return(&model.User{
		ID:           bson.NewObjectID(),
		Email:        "inactive@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		Status:       model.StatusInactive,
	}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), NewUserValidator())

	token, err := service.Login(context.Background(), "inactive@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
