// Package help реализует команду !help.
package help

import (
	"context"
	"fmt"
	"strings"

	"dbgext/internal/args"
	"dbgext/internal/core"
	"dbgext/internal/host"
)

// Args описывает аргументы команды.
type Args struct {
	Command string
}

// Spec возвращает схему help: необязательное имя команды.
func Spec() args.Spec[Args] {
	return args.Spec[Args]{
		Name:  "help",
		Short: "List extension commands or show usage of one command",
		Args: []args.Positional[Args]{
			args.String("command", "command to describe", func(a *Args) *string { return &a.Command }).Opt(),
		},
	}
}

// Module читает таблицу команд реестра.
type Module struct {
	registry *core.Registry
}

// New создает модуль поверх реестра.
func New(registry *core.Registry) *Module {
	return &Module{registry: registry}
}

// Command возвращает экспортируемую команду.
func (m *Module) Command() core.Command {
	return core.NewCommand(Spec(), m.Run)
}

func (m *Module) Run(ctx context.Context, h *host.Handle, a Args) error {
	out, err := h.Output()
	if err != nil {
		return err
	}
	if a.Command != "" {
		cmd, ok := m.registry.Lookup(a.Command)
		if !ok {
			return core.Failf("no such command %q", a.Command)
		}
		return host.PrintLn(out, host.OutputAllClients, "%s", strings.TrimRight(cmd.Help(), "\n"))
	}

	var b strings.Builder
	b.WriteString("Commands:")
	for _, cmd := range m.registry.Commands() {
		fmt.Fprintf(&b, "\n  !%-16s %s", cmd.Name(), cmd.Short())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(&b, " (aliases: %s)", strings.Join(aliases, ", "))
		}
	}
	return host.PrintLn(out, host.OutputAllClients, "%s", b.String())
}
