package host

import "fmt"

// Status повторяет HRESULT хоста: ноль означает успех.
type Status int32

const (
	StatusOK          Status = 0
	StatusNoInterface Status = -0x7FFFBFFE // 0x80004002
	StatusFail        Status = -0x7FFFBFFB // 0x80004005
)

// Succeeded сообщает, является ли код успешным.
func (s Status) Succeeded() bool { return s >= 0 }

func (s Status) String() string {
	return fmt.Sprintf("0x%08X", uint32(s))
}

// Error оборачивает ошибку операции хоста вместе с ее нативным кодом.
type Error struct {
	Op   string
	Code Status
}

// Errorf создает ошибку хоста с описанием операции.
func Errorf(code Status, format string, args ...any) *Error {
	return &Error{Op: fmt.Sprintf(format, args...), Code: code}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("host error %s", e.Code)
	}
	return fmt.Sprintf("%s: host error %s", e.Op, e.Code)
}
