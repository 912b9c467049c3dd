package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dbgext/internal/host"
	"dbgext/internal/storage"
)

// AuditSink записывает события вызова команд.
type AuditSink interface {
	Write(ctx context.Context, ev storage.AuditEvent) error
}

// Reporter доставляет диагностику в консоль хоста (по возможности) и
// в локальный журнал (всегда). Наружу ошибки не возвращает.
type Reporter struct {
	logger *slog.Logger
	audit  AuditSink
	now    func() time.Time
}

// NewReporter создает reporter; audit может быть nil.
func NewReporter(logger *slog.Logger, audit AuditSink) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger, audit: audit, now: time.Now}
}

// Report печатает диагностику в консоль хоста, если удалось получить вывод,
// и безусловно пишет ее в локальный журнал. Запрос справки пишется на уровне Info.
func (r *Reporter) Report(ctx context.Context, h *host.Handle, command, diag string, help bool) {
	if out, err := h.Output(); err != nil {
		r.logger.DebugContext(ctx, "host console unavailable", "command", command, "err", err)
	} else if err := host.PrintLn(out, host.OutputAllClients, "%s", diag); err != nil {
		r.logger.DebugContext(ctx, "host console write failed", "command", command, "err", err)
	}
	if help {
		r.logger.InfoContext(ctx, "command help", "command", command, "diagnostic", diag)
		return
	}
	r.logger.ErrorContext(ctx, "command failed", "command", command, "diagnostic", diag)
}

func (r *Reporter) record(ctx context.Context, command, raw, outcome string, status host.Status, err error) {
	r.logger.DebugContext(ctx, "command finished", "command", command, "outcome", outcome, "status", status.String())
	if r.audit == nil {
		return
	}
	ev := storage.AuditEvent{
		Command:   command,
		Args:      raw,
		Outcome:   outcome,
		Status:    int32(status),
		RequestID: uuid.NewString(),
		TS:        r.now().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	if werr := r.audit.Write(ctx, ev); werr != nil {
		r.logger.WarnContext(ctx, "audit write failed", "command", command, "err", werr)
	}
}
