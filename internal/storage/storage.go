package storage

import (
	"context"
	"time"
)

// Исходы вызова команды.
const (
	OutcomeOK         = "ok"
	OutcomeParseError = "parse_error"
	OutcomeError      = "error"
)

// AuditEvent фиксирует один вызов команды расширения.
type AuditEvent struct {
	Command   string
	Args      string
	Outcome   string
	Status    int32
	Error     string
	RequestID string
	TS        time.Time
}

// AuditQuery задает фильтры выборки аудита.
type AuditQuery struct {
	From    time.Time
	To      time.Time
	Command string
	Limit   int
}

// Store описывает операции хранилища.
type Store interface {
	SaveAudit(ctx context.Context, ev AuditEvent) error
	QueryAudit(ctx context.Context, q AuditQuery) ([]AuditEvent, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
	Close() error
}
