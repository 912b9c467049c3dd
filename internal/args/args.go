// Package args разбирает токены команды в типизированную структуру аргументов.
// Схема описывается Spec, а сам разбор и текст usage выполняет cobra.
package args

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	// Расширение грузится в процесс отладчика; подсказка mousetrap там не нужна.
	cobra.MousetrapHelpText = ""
}

// Positional описывает позиционный аргумент схемы.
type Positional[A any] struct {
	Name     string
	Help     string
	Optional bool
	set      func(a *A, tok string) error
}

// Opt возвращает необязательную копию аргумента.
func (p Positional[A]) Opt() Positional[A] {
	p.Optional = true
	return p
}

func (p Positional[A]) placeholder() string {
	if p.Optional {
		return "[" + p.Name + "]"
	}
	return "<" + p.Name + ">"
}

// String связывает позиционный аргумент со строковым полем.
func String[A any](name, help string, field func(*A) *string) Positional[A] {
	return Positional[A]{Name: name, Help: help, set: func(a *A, tok string) error {
		*field(a) = tok
		return nil
	}}
}

// Int связывает позиционный аргумент с целым полем; допускаются префиксы 0x и 0o.
func Int[A any](name, help string, field func(*A) *int64) Positional[A] {
	return Positional[A]{Name: name, Help: help, set: func(a *A, tok string) error {
		v, err := strconv.ParseInt(tok, 0, 64)
		if err != nil {
			return err
		}
		*field(a) = v
		return nil
	}}
}

// Uint связывает позиционный аргумент с беззнаковым полем (адреса, идентификаторы).
func Uint[A any](name, help string, field func(*A) *uint64) Positional[A] {
	return Positional[A]{Name: name, Help: help, set: func(a *A, tok string) error {
		v, err := strconv.ParseUint(tok, 0, 64)
		if err != nil {
			return err
		}
		*field(a) = v
		return nil
	}}
}

// Spec описывает схему одной команды.
type Spec[A any] struct {
	Name    string
	Aliases []string
	Short   string
	Args    []Positional[A]
	// Flags регистрирует именованные флаги, привязанные к полям a.
	Flags func(fs *pflag.FlagSet, a *A)
}

// Check проверяет саму схему: имена заданы, обязательные аргументы идут первыми.
func (s Spec[A]) Check() error {
	if s.Name == "" {
		return fmt.Errorf("command name is empty: %w", errInvalidSpec)
	}
	optional := false
	for i, p := range s.Args {
		if p.Name == "" || p.set == nil {
			return fmt.Errorf("%s: argument %d is not bound: %w", s.Name, i, errInvalidSpec)
		}
		if p.Optional {
			optional = true
			continue
		}
		if optional {
			return fmt.Errorf("%s: required <%s> follows an optional argument: %w", s.Name, p.Name, errInvalidSpec)
		}
	}
	return nil
}

// Usage возвращает текст usage в формате cobra.
func (s Spec[A]) Usage() string {
	var a A
	return s.command(&a).UsageString()
}

// Help возвращает полное описание команды: описание, аргументы и usage.
func (s Spec[A]) Help() string {
	return s.long() + "\n\n" + s.Usage()
}

func (s Spec[A]) command(a *A) *cobra.Command {
	use := []string{s.Name}
	for _, p := range s.Args {
		use = append(use, p.placeholder())
	}
	cmd := &cobra.Command{
		Use:           strings.Join(use, " "),
		Aliases:       s.Aliases,
		Short:         s.Short,
		Long:          s.long(),
		SilenceErrors: true,
		SilenceUsage:  true,
		// Без RunE cobra считает команду нерабочей и опускает строку usage.
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	if s.Flags != nil {
		s.Flags(cmd.Flags(), a)
	}
	cmd.InitDefaultHelpFlag()
	return cmd
}

func (s Spec[A]) long() string {
	if len(s.Args) == 0 {
		return s.Short
	}
	var b strings.Builder
	b.WriteString(s.Short)
	b.WriteString("\n\nArguments:\n")
	for _, p := range s.Args {
		fmt.Fprintf(&b, "  %-14s %s\n", p.placeholder(), p.Help)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s Spec[A]) arity(tokens []string) error {
	if len(tokens) > len(s.Args) {
		return &ParseError{Command: s.Name, Kind: UnexpectedArgument, Token: tokens[len(s.Args)]}
	}
	for i := len(tokens); i < len(s.Args); i++ {
		if !s.Args[i].Optional {
			return &ParseError{Command: s.Name, Kind: MissingArgument, Field: s.Args[i].Name}
		}
	}
	return nil
}

// Parse сопоставляет токены схеме. Результат возвращается только целиком:
// при ошибке это нулевое значение A и *ParseError.
func Parse[A any](spec Spec[A], tokens []string) (A, error) {
	var zero A
	if err := spec.Check(); err != nil {
		return zero, &ParseError{Command: spec.Name, Kind: InvalidValue, Field: "schema", Err: err}
	}

	var a A
	ran := false
	cmd := spec.command(&a)
	cmd.Args = func(_ *cobra.Command, pos []string) error {
		return spec.arity(pos)
	}
	cmd.RunE = func(_ *cobra.Command, pos []string) error {
		for i, tok := range pos {
			p := spec.Args[i]
			if err := p.set(&a, tok); err != nil {
				return &ParseError{Command: spec.Name, Kind: InvalidValue, Field: p.Name, Token: tok, Err: err}
			}
		}
		ran = true
		return nil
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ParseError{Command: spec.Name, Kind: InvalidFlag, Err: err}
	})

	if tokens == nil {
		tokens = []string{}
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(tokens)

	err := cmd.Execute()
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			perr = &ParseError{Command: spec.Name, Kind: InvalidFlag, Err: err}
		}
		perr.Usage = cmd.UsageString()
		return zero, perr
	}
	if !ran {
		// cobra вывел help и не вызвал RunE.
		return zero, &ParseError{Command: spec.Name, Kind: HelpRequested, Usage: out.String()}
	}
	return a, nil
}
