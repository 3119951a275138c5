// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/phishguard/internal/apperr"
	"github.com/magabrotheeeer/phishguard/internal/lib/jwt"
	"github.com/magabrotheeeer/phishguard/internal/lib/password"
	"github.com/magabrotheeeer/phishguard/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет пользователя с пустым кошельком и возвращает его UID.
	RegisterUser(ctx context.Context, email, passwordHash string, role models.Role) (string, error)

	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// выдает подписанный токен.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, roleName string) (token string, role models.Role, err error) {
	role, err = models.ParseRole(strings.ToUpper(roleName))
	if err != nil {
		return "", "", apperr.ErrUnknownRole
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", "", err
	}

	uid, err := s.users.RegisterUser(ctx, email, hashed, role)
	if err != nil {
		return "", "", err
	}

	token, err = s.jwtMaker.GenerateToken(uid, role)
	if err != nil {
		return "", "", err
	}
	return token, role, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token string, role models.Role, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", apperr.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает uid и роль владельца.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, models.Role, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return claims.UserUID, claims.Role, nil
}

// CurrentUser возвращает профиль владельца токена для /me.
func (s *AuthService) CurrentUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}
