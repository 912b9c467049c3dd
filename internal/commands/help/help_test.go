package help

import (
	"context"
	"strings"
	"testing"

	"dbgext/internal/core"
	"dbgext/internal/host"
	"dbgext/internal/host/memhost"
)

func newRegistry(t *testing.T) *core.Registry {
	t.Helper()
	r := core.NewRegistry(nil)
	if err := r.Register(New(r).Command()); err != nil {
		t.Fatalf("register: %v", err)
	}
	return r
}

func TestHelpLists(t *testing.T) {
	r := newRegistry(t)
	hst := memhost.New(nil)
	if st := r.Call(context.Background(), "help", hst, ""); st != host.StatusOK {
		t.Fatalf("unexpected status %s", st)
	}
	if !strings.Contains(hst.Text(), "!help") {
		t.Fatalf("unexpected console: %q", hst.Text())
	}
}

func TestHelpCommandUsage(t *testing.T) {
	r := newRegistry(t)
	hst := memhost.New(nil)
	if st := r.Call(context.Background(), "help", hst, "help"); st != host.StatusOK {
		t.Fatalf("unexpected status %s", st)
	}
	for _, want := range []string{"Usage:\n  help [command]", "Arguments:", "[command]"} {
		if !strings.Contains(hst.Text(), want) {
			t.Fatalf("console missing %q: %q", want, hst.Text())
		}
	}
}

func TestHelpUnknownCommand(t *testing.T) {
	r := newRegistry(t)
	hst := memhost.New(nil)
	if st := r.Call(context.Background(), "help", hst, "nope"); st != host.StatusFail {
		t.Fatalf("expected generic failure, got %s", st)
	}
	if !strings.Contains(hst.Text(), `error: no such command "nope"`) {
		t.Fatalf("unexpected console: %q", hst.Text())
	}
}
