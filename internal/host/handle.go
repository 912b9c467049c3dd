package host

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var errWrongInterface = errors.New("client returned unexpected interface")

// AcquireError означает, что клиент не предоставляет запрошенную возможность.
type AcquireError struct {
	Capability Capability
	Err        error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire %s capability: %v", e.Capability, e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Handle оборачивает клиента хоста на время одного вызова.
type Handle struct {
	client Client
}

// NewHandle создает адаптер поверх клиента.
func NewHandle(client Client) *Handle {
	return &Handle{client: client}
}

// Acquire запрашивает возможность c и приводит ее к T. Повторных попыток нет.
func Acquire[T any](h *Handle, c Capability) (T, error) {
	var zero T
	if h == nil || h.client == nil {
		return zero, &AcquireError{Capability: c, Err: errors.New("client is nil")}
	}
	raw, err := h.client.Query(c)
	if err != nil {
		return zero, &AcquireError{Capability: c, Err: err}
	}
	v, ok := raw.(T)
	if !ok {
		return zero, &AcquireError{Capability: c, Err: fmt.Errorf("%T: %w", raw, errWrongInterface)}
	}
	return v, nil
}

// Output запрашивает возможность вывода в консоль хоста.
func (h *Handle) Output() (Output, error) {
	return Acquire[Output](h, CapabilityOutput)
}

// Control запрашивает управляющий интерфейс движка.
func (h *Handle) Control() (Control, error) {
	return Acquire[Control](h, CapabilityControl)
}

// PrintLn печатает форматированную строку с переводом строки.
func PrintLn(out Output, mask uint32, format string, args ...any) error {
	return out.Output(mask, fmt.Sprintf(format, args...)+"\n")
}

// OwnedArgs копирует сырые аргументы хоста в строку: до первого NUL,
// с заменой невалидных UTF-8 последовательностей.
func OwnedArgs(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "�")
}
