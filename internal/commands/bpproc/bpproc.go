// Package bpproc реализует команду !bpproc: точку останова на запуск процесса.
package bpproc

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/pflag"

	"dbgext/internal/args"
	"dbgext/internal/core"
	"dbgext/internal/host"
)

// Args описывает аргументы команды.
type Args struct {
	Process string
	Cmdline string
}

// Options задает привязку созданной точки останова к процессу.
type Options struct {
	OffsetExpression string
	CommandTemplate  string
	LeaveDisabled    bool
}

// Spec возвращает схему аргументов bpproc.
func Spec() args.Spec[Args] {
	return args.Spec[Args]{
		Name:    "bpproc",
		Aliases: []string{"bop", "breakonprocess"},
		Short:   "Set a breakpoint when a process starts",
		Args: []args.Positional[Args]{
			args.String("process", "The process to find.", func(a *Args) *string { return &a.Process }),
		},
		Flags: func(fs *pflag.FlagSet, a *Args) {
			fs.StringVar(&a.Cmdline, "cmdline", "", "only break when the command line contains this substring")
		},
	}
}

// Module хранит шаблон привязки и выполняет команду.
type Module struct {
	opts Options
	tmpl *template.Template
}

// New проверяет шаблон команды точки останова и создает модуль.
func New(opts Options) (*Module, error) {
	m := &Module{opts: opts}
	if opts.CommandTemplate != "" {
		tmpl, err := template.New("bpproc").Funcs(template.FuncMap{"esc": escape}).Parse(opts.CommandTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse command template: %w", err)
		}
		m.tmpl = tmpl
	}
	return m, nil
}

// Command возвращает экспортируемую команду.
func (m *Module) Command() core.Command {
	return core.NewCommand(Spec(), m.Run)
}

// Run печатает цель, создает кодовую точку останова с AnyID и привязывает ее к процессу.
// Точка останова принадлежит хосту; модуль ее не отслеживает.
func (m *Module) Run(ctx context.Context, h *host.Handle, a Args) error {
	if strings.TrimSpace(a.Process) == "" {
		return core.Failf("process name is empty")
	}
	ctrl, err := h.Control()
	if err != nil {
		return err
	}
	if err := host.PrintLn(ctrl, host.OutputAllClients, "process: %s", a.Process); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	bp, err := ctrl.AddBreakpoint(host.BreakpointCode, host.AnyID)
	if err != nil {
		return fmt.Errorf("create breakpoint: %w", err)
	}
	if err := m.Bind(bp, a); err != nil {
		return err
	}
	id, err := bp.ID()
	if err != nil {
		return fmt.Errorf("breakpoint id: %w", err)
	}
	return host.PrintLn(ctrl, host.OutputAllClients, "bp %d: breaking in new '%s' processes", id, a.Process)
}

// Bind связывает точку останова с процессом: адрес, команда фильтра, включение.
func (m *Module) Bind(bp host.Breakpoint, a Args) error {
	if m.opts.OffsetExpression != "" {
		if err := bp.SetOffsetExpression(m.opts.OffsetExpression); err != nil {
			return fmt.Errorf("set offset %s: %w", m.opts.OffsetExpression, err)
		}
	}
	if m.tmpl != nil {
		var b strings.Builder
		if err := m.tmpl.Execute(&b, a); err != nil {
			return fmt.Errorf("render breakpoint command: %w", err)
		}
		if err := bp.SetCommand(b.String()); err != nil {
			return fmt.Errorf("set breakpoint command: %w", err)
		}
	}
	if m.opts.LeaveDisabled {
		return nil
	}
	if err := bp.AddFlags(host.BreakpointEnabled); err != nil {
		return fmt.Errorf("enable breakpoint: %w", err)
	}
	return nil
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
