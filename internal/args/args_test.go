package args

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type procArgs struct {
	Process string
	Cmdline string
}

func procSpec() Spec[procArgs] {
	return Spec[procArgs]{
		Name:  "bpproc",
		Short: "Break when a process starts",
		Args: []Positional[procArgs]{
			String("process", "process image name", func(a *procArgs) *string { return &a.Process }),
		},
		Flags: func(fs *pflag.FlagSet, a *procArgs) {
			fs.StringVar(&a.Cmdline, "cmdline", "", "command line substring")
		},
	}
}

type optArgs struct {
	Count   int64
	Addr    uint64
	Verbose bool
}

func optSpec() Spec[optArgs] {
	return Spec[optArgs]{
		Name: "dump",
		Args: []Positional[optArgs]{
			Int("count", "items", func(a *optArgs) *int64 { return &a.Count }).Opt(),
			Uint("addr", "address", func(a *optArgs) *uint64 { return &a.Addr }).Opt(),
		},
		Flags: func(fs *pflag.FlagSet, a *optArgs) {
			fs.BoolVarP(&a.Verbose, "verbose", "v", false, "verbose")
		},
	}
}

func TestParseRequiredString(t *testing.T) {
	a, err := Parse(procSpec(), []string{"foo.exe"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Process != "foo.exe" || a.Cmdline != "" {
		t.Fatalf("unexpected args: %#v", a)
	}
}

func TestParseKeepsTokenVerbatim(t *testing.T) {
	a, err := Parse(procSpec(), []string{" my app.exe "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Process != " my app.exe " {
		t.Fatalf("token was altered: %q", a.Process)
	}
}

func TestParseFlag(t *testing.T) {
	a, err := Parse(procSpec(), []string{"--cmdline", "-k netsvcs", "svchost.exe"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Process != "svchost.exe" || a.Cmdline != "-k netsvcs" {
		t.Fatalf("unexpected args: %#v", a)
	}
}

func TestParseMissingRequired(t *testing.T) {
	_, err := Parse(procSpec(), []string{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Kind != MissingArgument || perr.Field != "process" {
		t.Fatalf("unexpected parse error: %#v", perr)
	}
	rendered := perr.Render()
	if !strings.HasPrefix(rendered, "error: bpproc: missing required argument <process>") {
		t.Fatalf("unexpected rendering: %q", rendered)
	}
	if !strings.Contains(rendered, "Usage:") || !strings.Contains(rendered, "bpproc <process>") {
		t.Fatalf("usage missing from rendering: %q", rendered)
	}
}

func TestParseNilTokens(t *testing.T) {
	_, err := Parse(procSpec(), nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != MissingArgument {
		t.Fatalf("expected missing argument, got %v", err)
	}
}

func TestParseUnexpectedToken(t *testing.T) {
	_, err := Parse(procSpec(), []string{"a.exe", "b.exe"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != UnexpectedArgument || perr.Token != "b.exe" {
		t.Fatalf("expected unexpected argument, got %v", err)
	}
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse(procSpec(), []string{"--nope", "a.exe"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != InvalidFlag {
		t.Fatalf("expected invalid flag, got %v", err)
	}
	if perr.Usage == "" {
		t.Fatalf("expected usage on flag error")
	}
}

func TestParseHelp(t *testing.T) {
	_, err := Parse(procSpec(), []string{"--help"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != HelpRequested {
		t.Fatalf("expected help request, got %v", err)
	}
	if !strings.Contains(perr.Render(), "Break when a process starts") {
		t.Fatalf("help text missing: %q", perr.Render())
	}
}

func TestParseAllOptionalEmpty(t *testing.T) {
	a, err := Parse(optSpec(), []string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a != (optArgs{}) {
		t.Fatalf("expected defaults, got %#v", a)
	}
}

func TestParseNumbers(t *testing.T) {
	a, err := Parse(optSpec(), []string{"-v", "12", "0x7ff6a000"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Count != 12 || a.Addr != 0x7ff6a000 || !a.Verbose {
		t.Fatalf("unexpected args: %#v", a)
	}
}

func TestParseInvalidNumber(t *testing.T) {
	a, err := Parse(optSpec(), []string{"12", "zz"})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != InvalidValue || perr.Field != "addr" {
		t.Fatalf("expected invalid value, got %v", err)
	}
	if a != (optArgs{}) {
		t.Fatalf("partial result leaked: %#v", a)
	}
}

func TestSpecCheck(t *testing.T) {
	bad := Spec[optArgs]{
		Name: "bad",
		Args: []Positional[optArgs]{
			Int("count", "", func(a *optArgs) *int64 { return &a.Count }).Opt(),
			Uint("addr", "", func(a *optArgs) *uint64 { return &a.Addr }),
		},
	}
	if err := bad.Check(); !errors.Is(err, errInvalidSpec) {
		t.Fatalf("expected errInvalidSpec, got %v", err)
	}
	if err := procSpec().Check(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestUsage(t *testing.T) {
	u := procSpec().Usage()
	if !strings.Contains(u, "Usage:\n  bpproc <process> [flags]") || !strings.Contains(u, "--cmdline") {
		t.Fatalf("unexpected usage: %q", u)
	}
}

func TestHelpText(t *testing.T) {
	h := procSpec().Help()
	for _, want := range []string{"Break when a process starts", "Arguments:", "<process>", "Usage:\n  bpproc <process> [flags]"} {
		if !strings.Contains(h, want) {
			t.Fatalf("help text missing %q: %q", want, h)
		}
	}
}
