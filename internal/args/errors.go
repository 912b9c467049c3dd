package args

import (
	"errors"
	"fmt"
)

var errInvalidSpec = errors.New("invalid command schema")

// Kind классифицирует нарушение схемы.
type Kind int

const (
	MissingArgument Kind = iota + 1
	UnexpectedArgument
	InvalidValue
	InvalidFlag
	HelpRequested
)

func (k Kind) String() string {
	switch k {
	case MissingArgument:
		return "missing_argument"
	case UnexpectedArgument:
		return "unexpected_argument"
	case InvalidValue:
		return "invalid_value"
	case InvalidFlag:
		return "invalid_flag"
	case HelpRequested:
		return "help_requested"
	default:
		return "unknown"
	}
}

// ParseError описывает несоответствие токенов схеме команды и несет текст usage.
type ParseError struct {
	Command string
	Kind    Kind
	Field   string
	Token   string
	Err     error
	Usage   string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case MissingArgument:
		msg = fmt.Sprintf("missing required argument <%s>", e.Field)
	case UnexpectedArgument:
		msg = fmt.Sprintf("unexpected argument %q", e.Token)
	case InvalidValue:
		msg = fmt.Sprintf("invalid value %q for <%s>: %v", e.Token, e.Field, e.Err)
	case InvalidFlag:
		msg = e.Err.Error()
	case HelpRequested:
		msg = "help requested"
	default:
		msg = "invalid arguments"
	}
	if e.Command == "" {
		return msg
	}
	return e.Command + ": " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Render возвращает диагностику для оператора: нарушение и usage команды.
func (e *ParseError) Render() string {
	if e.Kind == HelpRequested {
		return e.Usage
	}
	if e.Usage == "" {
		return "error: " + e.Error()
	}
	return "error: " + e.Error() + "\n\n" + e.Usage
}
