package core

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"dbgext/internal/args"
	"dbgext/internal/storage"
)

const statusAccessDenied = -0x7FF8FFFB // 0x80070005

type fakeAudit struct {
	events []storage.AuditEvent
}

func (f *fakeAudit) Write(ctx context.Context, ev storage.AuditEvent) error {
	f.events = append(f.events, ev)
	return nil
}

type targetArgs struct {
	Target string
}

func targetSpec(name string, aliases ...string) args.Spec[targetArgs] {
	return args.Spec[targetArgs]{
		Name:    name,
		Aliases: aliases,
		Short:   "test command",
		Args: []args.Positional[targetArgs]{
			args.String("target", "target name", func(a *targetArgs) *string { return &a.Target }),
		},
	}
}

func newTestReporter(t *testing.T) (*Reporter, *bytes.Buffer, *fakeAudit) {
	t.Helper()
	var logs bytes.Buffer
	lg := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	audit := &fakeAudit{}
	return NewReporter(lg, audit), &logs, audit
}
