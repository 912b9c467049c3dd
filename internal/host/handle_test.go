package host

import (
	"errors"
	"strings"
	"testing"
)

type fakeOutput struct {
	text strings.Builder
}

func (f *fakeOutput) Output(mask uint32, text string) error {
	f.text.WriteString(text)
	return nil
}

type fakeClient struct {
	caps map[Capability]any
	err  error
}

func (f *fakeClient) Query(c Capability) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.caps[c]
	if !ok {
		return nil, &Error{Op: "query", Code: StatusNoInterface}
	}
	return v, nil
}

func TestAcquireOutput(t *testing.T) {
	out := &fakeOutput{}
	h := NewHandle(&fakeClient{caps: map[Capability]any{CapabilityOutput: out}})
	got, err := h.Output()
	if err != nil {
		t.Fatalf("acquire output: %v", err)
	}
	if err := PrintLn(got, OutputAllClients, "process: %s", "a.exe"); err != nil {
		t.Fatalf("print: %v", err)
	}
	if out.text.String() != "process: a.exe\n" {
		t.Fatalf("unexpected output %q", out.text.String())
	}
}

func TestAcquireControlMissing(t *testing.T) {
	h := NewHandle(&fakeClient{caps: map[Capability]any{CapabilityOutput: &fakeOutput{}}})
	_, err := h.Control()
	var acqErr *AcquireError
	if !errors.As(err, &acqErr) {
		t.Fatalf("expected AcquireError, got %v", err)
	}
	if acqErr.Capability != CapabilityControl {
		t.Fatalf("unexpected capability %q", acqErr.Capability)
	}
}

func TestAcquireWrongInterface(t *testing.T) {
	// fakeOutput не реализует Control.
	h := NewHandle(&fakeClient{caps: map[Capability]any{CapabilityControl: &fakeOutput{}}})
	_, err := h.Control()
	if !errors.Is(err, errWrongInterface) {
		t.Fatalf("expected errWrongInterface, got %v", err)
	}
}

func TestAcquireNilClient(t *testing.T) {
	if _, err := NewHandle(nil).Output(); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestOwnedArgs(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"nul terminated", []byte("myapp.exe\x00garbage"), "myapp.exe"},
		{"no terminator", []byte("myapp.exe"), "myapp.exe"},
		{"empty", []byte{0}, ""},
		{"nil", nil, ""},
		{"invalid utf8", []byte{'a', 0xff, 'b', 0}, "a�b"},
	}
	for _, tc := range cases {
		if got := OwnedArgs(tc.raw); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusFail.String() != "0x80004005" {
		t.Fatalf("unexpected E_FAIL rendering %s", StatusFail)
	}
	if StatusNoInterface.String() != "0x80004002" {
		t.Fatalf("unexpected E_NOINTERFACE rendering %s", StatusNoInterface)
	}
	if !StatusOK.Succeeded() || StatusFail.Succeeded() {
		t.Fatalf("unexpected Succeeded results")
	}
}
