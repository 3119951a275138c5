package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/lib/jwt"
	"github.com/magabrotheeeer/phishguard/internal/lib/password"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, email, passwordHash string, role models.Role) (string, error) {
	args := m.Called(ctx, email, passwordHash, role)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		roleName   string
		setupMocks func(u *UsersMock)
		wantRole   models.Role
		wantErr    error
	}{
		{
			name:     "регистрация клиента",
			roleName: "CUSTOMER",
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, "user@example.com", mock.Anything, models.RoleCustomer).
					Return("uid-1", nil)
			},
			wantRole: models.RoleCustomer,
		},
		{
			name:     "роль нормализуется к верхнему регистру",
			roleName: "provider",
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, "user@example.com", mock.Anything, models.RoleProvider).
					Return("uid-2", nil)
			},
			wantRole: models.RoleProvider,
		},
		{
			name:       "неизвестная роль",
			roleName:   "ADMIN",
			setupMocks: func(_ *UsersMock) {},
			wantErr:    apperr.ErrUnknownRole,
		},
		{
			name:     "email уже занят",
			roleName: "CUSTOMER",
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, "user@example.com", mock.Anything, models.RoleCustomer).
					Return("", apperr.ErrEmailTaken)
			},
			wantErr: apperr.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			svc := NewAuthService(users, newMaker())
			token, role, err := svc.Register(context.Background(), "user@example.com", "secret123", tt.roleName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.wantRole, role)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}

	tests := []struct {
		name        string
		rawPassword string
		setupMocks  func(u *UsersMock)
		wantErr     error
	}{
		{
			name:        "успешный вход",
			rawPassword: "secret123",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
			},
		},
		{
			name:        "неверный пароль",
			rawPassword: "wrongpass",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").Return(user, nil)
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
		{
			name:        "пользователь не найден",
			rawPassword: "secret123",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(nil, apperr.ErrInvalidCredentials)
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			svc := NewAuthService(users, newMaker())
			token, role, err := svc.Login(context.Background(), "user@example.com", tt.rawPassword)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, models.RoleCustomer, role)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	users := new(UsersMock)
	maker := newMaker()
	svc := NewAuthService(users, maker)

	token, err := maker.GenerateToken("uid-1", models.RoleProvider)
	require.NoError(t, err)

	uid, role, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	assert.Equal(t, models.RoleProvider, role)

	_, _, err = svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
