package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"myapp.exe", []string{"myapp.exe"}},
		{"  myapp.exe  ", []string{"myapp.exe"}},
		{`"my app.exe"`, []string{"my app.exe"}},
		{`'my app.exe' --cmdline x`, []string{"my app.exe", "--cmdline", "x"}},
		{`a\ b c`, []string{"a b", "c"}},
		{`"say \"hi\""`, []string{`say "hi"`}},
		{`'it''s'`, []string{"its"}},
		{`""`, []string{""}},
		{"a\tb", []string{"a", "b"}},
	}
	for _, tc := range cases {
		got, err := Split(tc.in)
		if err != nil {
			t.Fatalf("split %q: %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("split %q: got %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestSplitMalformed(t *testing.T) {
	for _, in := range []string{`"my app.exe`, `'abc`, `abc\`, `a "b' c`} {
		_, err := Split(in)
		var tokErr *TokenizeError
		if !errors.As(err, &tokErr) {
			t.Fatalf("split %q: expected TokenizeError, got %v", in, err)
		}
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("split %q: expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestSplitOperator(t *testing.T) {
	_, err := Split("a.exe; calc")
	var tokErr *TokenizeError
	if !errors.As(err, &tokErr) {
		t.Fatalf("expected TokenizeError, got %v", err)
	}
	if !errors.Is(err, ErrOperator) {
		t.Fatalf("expected ErrOperator, got %v", err)
	}
	if tokErr.Position != 5 {
		t.Fatalf("unexpected position %d", tokErr.Position)
	}
}

func TestSplitQuotedOperator(t *testing.T) {
	got, err := Split(`"a;b"`)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(got) != 1 || got[0] != "a;b" {
		t.Fatalf("unexpected tokens %#v", got)
	}
}
