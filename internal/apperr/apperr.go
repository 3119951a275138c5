// Package apperr определяет доменные ошибки сервиса.
//
// Сервисы и хранилище возвращают эти ошибки (возможно, обернутые через %w),
// HTTP-слой отображает их в статус-коды в одном месте.
package apperr

import "errors"

var (
	// ErrValidation — некорректные входные данные, не прошедшие доменные проверки.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownRole — роль вне фиксированного набора.
	ErrUnknownRole = errors.New("unknown role")
	// ErrNotOwner — провайдер обращается к чужому модулю.
	ErrNotOwner = errors.New("module belongs to another provider")
	// ErrModuleNotFound — модуль отсутствует.
	ErrModuleNotFound = errors.New("module not found")
	// ErrScenarioNotFound — сценарий отсутствует.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrInsufficientFunds — баланс меньше цены на момент покупки.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
