package tracker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured - у пользователя ещё нет рассчитанных норм
	ErrNotConfigured = errors.New("profile not configured")
	// ErrNoDialog - текст пришёл вне диалога настройки профиля
	ErrNoDialog = errors.New("profile dialog is not active")
	// ErrNoPendingFood - нет продукта, ожидающего ввода граммов
	ErrNoPendingFood = errors.New("no pending food")
)

// ValidationError - аргумент не разобран или вне допустимого диапазона.
// Field определяет, какой формат ожидался.
type ValidationError struct {
	Field   string
	Input   string
	Options []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Input)
}

// NotFoundError - внешний сервис не нашёл запрос. Incomplete означает,
// что продукт найден, но без калорийности.
type NotFoundError struct {
	Query      string
	Incomplete bool
}

func (e *NotFoundError) Error() string {
	if e.Incomplete {
		return fmt.Sprintf("no calorie data for %q", e.Query)
	}
	return fmt.Sprintf("%q not found", e.Query)
}

// TransientError - внешний сервис недоступен или ответил ошибкой
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// UnknownOptionError - значение не входит в список допустимых
type UnknownOptionError struct {
	Value   string
	Options []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q, expected one of: %s", e.Value, strings.Join(e.Options, ", "))
}
