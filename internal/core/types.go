package core

import (
	"context"

	"dbgext/internal/args"
	"dbgext/internal/host"
)

// Body реализует доменную логику команды над разобранными аргументами.
// nil означает успех; *host.Error сохраняет нативный код хоста.
type Body[A any] func(ctx context.Context, h *host.Handle, a A) error

// Command определяет контракт экспортируемой команды расширения.
type Command interface {
	Name() string
	Aliases() []string
	Short() string
	Usage() string
	Help() string
	Check() error
	Run(ctx context.Context, rep *Reporter, client host.Client, raw string) host.Status
}

type command[A any] struct {
	spec args.Spec[A]
	body Body[A]
}

// NewCommand связывает схему аргументов с телом команды.
func NewCommand[A any](spec args.Spec[A], body Body[A]) Command {
	return &command[A]{spec: spec, body: body}
}

func (c *command[A]) Name() string      { return c.spec.Name }
func (c *command[A]) Aliases() []string { return c.spec.Aliases }
func (c *command[A]) Short() string     { return c.spec.Short }
func (c *command[A]) Usage() string     { return c.spec.Usage() }
func (c *command[A]) Help() string      { return c.spec.Help() }

func (c *command[A]) Check() error {
	if c.body == nil {
		return errNilBody
	}
	return c.spec.Check()
}

func (c *command[A]) Run(ctx context.Context, rep *Reporter, client host.Client, raw string) host.Status {
	return Wrap(ctx, rep, c.spec, c.body, client, raw)
}
