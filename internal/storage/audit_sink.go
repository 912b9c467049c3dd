package storage

import "context"

// Discard принимает события и ничего не сохраняет; используется, когда аудит выключен.
type Discard struct{}

func (Discard) Write(ctx context.Context, ev AuditEvent) error { return nil }
