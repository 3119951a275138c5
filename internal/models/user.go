// Package models содержит доменные структуры PhishGuard:
// пользователей, модули обучения, сценарии, кошельки и записи леджера.
package models

import (
	"fmt"
	"time"
)

// Role — закрытый набор ролей пользователя.
type Role string

const (
	// RoleCustomer покупает модули и проходит сценарии.
	RoleCustomer Role = "CUSTOMER"
	// RoleProvider создает модули и сценарии.
	RoleProvider Role = "PROVIDER"
)

// ParseRole проверяет, что строка является известной ролью.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleProvider:
		return RoleProvider, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// User описывает зарегистрированного пользователя.
type User struct {
	UID          string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
