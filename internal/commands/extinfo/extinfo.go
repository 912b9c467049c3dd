// Package extinfo реализует команду !extinfo: версия расширения и сведения о процессе хоста.
package extinfo

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/pflag"

	"dbgext/internal/args"
	"dbgext/internal/core"
	"dbgext/internal/host"
)

// Args описывает аргументы команды.
type Args struct {
	Verbose bool
}

// Spec возвращает схему extinfo: позиционных аргументов нет.
func Spec() args.Spec[Args] {
	return args.Spec[Args]{
		Name:  "extinfo",
		Short: "Show extension version and host process details",
		Flags: func(fs *pflag.FlagSet, a *Args) {
			fs.BoolVarP(&a.Verbose, "verbose", "v", false, "include the host command line")
		},
	}
}

// Module выводит сведения о расширении.
type Module struct {
	version uint32
	pid     int32
}

// New создает модуль для версии расширения version.
func New(version uint32) *Module {
	return &Module{version: version, pid: int32(os.Getpid())}
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
	p, err := process.NewProcessWithContext(ctx, m.pid)
	if err != nil {
		return fmt.Errorf("host process %d: %w", m.pid, err)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return fmt.Errorf("process name: %w", err)
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return fmt.Errorf("memory info: %w", err)
	}
	threads, err := p.NumThreadsWithContext(ctx)
	if err != nil {
		return fmt.Errorf("thread count: %w", err)
	}

	lines := []string{
		fmt.Sprintf("dbgext %s (0x%08X)", FormatVersion(m.version), m.version),
		fmt.Sprintf("host process: %s (pid %d)", name, m.pid),
		fmt.Sprintf("rss: %d bytes, threads: %d", mem.RSS, threads),
	}
	if a.Verbose {
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			return fmt.Errorf("command line: %w", err)
		}
		lines = append(lines, "command line: "+cmdline)
	}
	for _, line := range lines {
		if err := host.PrintLn(out, host.OutputAllClients, "%s", line); err != nil {
			return fmt.Errorf("print: %w", err)
		}
	}
	return nil
}

// FormatVersion переводит упакованную версию (старшее слово major, младшее minor) в текст.
func FormatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d", v>>16, v&0xFFFF)
}
