// Package shell разбивает строку аргументов команды на токены по правилам shell:
// одинарные и двойные кавычки, экранирование обратной косой чертой, пробелы как разделители.
package shell

import (
	"errors"
	"fmt"

	"github.com/mattn/go-shellwords"
)

var (
	// ErrMalformed возвращается при незакрытой кавычке или висящем экранировании.
	ErrMalformed = errors.New("unbalanced quote or dangling escape")
	// ErrOperator возвращается, если в строке встретился неэкранированный оператор shell.
	ErrOperator = errors.New("unexpected shell operator")
)

// TokenizeError описывает некорректную строку аргументов.
type TokenizeError struct {
	Input    string
	Position int
	Err      error
}

func (e *TokenizeError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("tokenize arguments at %d: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("tokenize arguments: %v", e.Err)
}

func (e *TokenizeError) Unwrap() error { return e.Err }

// Split возвращает токены в порядке следования. Пустая строка дает пустой срез.
func Split(raw string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false

	tokens, err := p.Parse(raw)
	if err != nil {
		return nil, &TokenizeError{Input: raw, Position: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	// shellwords останавливается на ; & | < > и сообщает позицию.
	if p.Position >= 0 {
		return nil, &TokenizeError{Input: raw, Position: p.Position, Err: ErrOperator}
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}
