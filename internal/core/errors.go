package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPanic означает, что тело команды или схема аргументов запаниковали.
	ErrPanic = errors.New("command panicked")

	errCommandExists    = errors.New("command already registered")
	errUnknownCommand   = errors.New("unknown command")
	errInvalidArguments = errors.New("invalid arguments")
	errNilBody          = errors.New("command body is nil")
)

// DomainError описывает нарушение правил конкретной команды; нативного кода у нее нет.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }

// Failf создает DomainError.
func Failf(format string, args ...any) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}
