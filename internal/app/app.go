package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"dbgext/internal/commands/bpproc"
	"dbgext/internal/commands/extinfo"
	"dbgext/internal/commands/help"
	"dbgext/internal/config"
	"dbgext/internal/core"
	"dbgext/internal/host"
	"dbgext/internal/storage"
	"dbgext/internal/storage/sqlite"
	"dbgext/pkg/logger"
)

// Версия расширения: старшее слово major, младшее minor. Флаги обязаны быть нулем.
const (
	Version uint32 = 0x0001_0000
	Flags   uint32 = 0
)

// Initialize сообщает хосту версию и флаги при загрузке; всегда успешна.
func Initialize() (version, flags uint32, status host.Status) {
	return Version, Flags, host.StatusOK
}

// App агрегирует зависимости расширения.
type App struct {
	Registry *core.Registry
	Store    storage.Store
	Logger   *slog.Logger
	Config   config.Config

	closers []io.Closer
}

// NewApp строит расширение: журнал, аудит и таблицу команд.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	lg, logCloser, err := logger.Open(cfg.Extension.LogPath, cfg.Extension.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &App{Logger: lg, Config: cfg, closers: []io.Closer{logCloser}}

	var audit core.AuditSink = storage.Discard{}
	if cfg.Audit.Enabled {
		st, err := sqlite.Open(cfg.Audit.SQLitePath)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		a.Store = st
		a.closers = append(a.closers, st)
		audit = st
		if cfg.Audit.RetentionDays > 0 {
			before := time.Now().Add(-time.Duration(cfg.Audit.RetentionDays) * 24 * time.Hour)
			if n, err := st.Prune(ctx, before); err != nil {
				lg.WarnContext(ctx, "audit retention failed", "err", err)
			} else if n > 0 {
				lg.InfoContext(ctx, "audit retention applied", "deleted", n)
			}
		}
	}

	r, err := NewRegistry(cfg, core.NewReporter(lg, audit))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Registry = r
	return a, nil
}

// NewRegistry регистрирует экспортируемые команды расширения.
func NewRegistry(cfg config.Config, rep *core.Reporter) (*core.Registry, error) {
	r := core.NewRegistry(rep)
	bp, err := bpproc.New(bpproc.Options{
		OffsetExpression: cfg.BPProc.OffsetExpression,
		CommandTemplate:  cfg.BPProc.CommandTemplate,
		LeaveDisabled:    cfg.BPProc.LeaveDisabled,
	})
	if err != nil {
		return nil, fmt.Errorf("bpproc: %w", err)
	}
	for _, cmd := range []core.Command{
		bp.Command(),
		extinfo.New(Version).Command(),
		help.New(r).Command(),
	} {
		if err := r.Register(cmd); err != nil {
			return nil, fmt.Errorf("register %s: %w", cmd.Name(), err)
		}
	}
	return r, nil
}

// Call — точка входа экспортируемой команды: client и raw заимствованы на время вызова.
func (a *App) Call(ctx context.Context, name string, client host.Client, raw []byte) host.Status {
	return a.Registry.Call(ctx, name, client, host.OwnedArgs(raw))
}

// Close высвобождает ресурсы приложения.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
