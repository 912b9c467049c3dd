package core

import (
	"context"
	"errors"
	"fmt"

	"dbgext/internal/args"
	"dbgext/internal/host"
	"dbgext/internal/shell"
	"dbgext/internal/storage"
)

// Wrap выполняет один вызов команды: разбор, выполнение, отчет, перевод в код.
// Возвращает ровно один код и не пропускает панику наружу.
func Wrap[A any](ctx context.Context, rep *Reporter, spec args.Spec[A], body Body[A], client host.Client, raw string) host.Status {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	h := host.NewHandle(client)

	a, err := parse(spec, raw)
	if err != nil {
		var perr *args.ParseError
		help := errors.As(err, &perr) && perr.Kind == args.HelpRequested
		rep.Report(ctx, h, spec.Name, renderParseError(spec, err), help)
		rep.record(ctx, spec.Name, raw, storage.OutcomeParseError, host.StatusFail, err)
		return host.StatusFail
	}

	err = call(ctx, body, h, a)
	if err != nil {
		rep.Report(ctx, h, spec.Name, "error: "+err.Error(), false)
	}
	status := Translate(err)
	outcome := storage.OutcomeOK
	if err != nil {
		outcome = storage.OutcomeError
	}
	rep.record(ctx, spec.Name, raw, outcome, status, err)
	return status
}

func parse[A any](spec args.Spec[A], raw string) (a A, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: parse arguments: %w: %v", spec.Name, ErrPanic, r)
		}
	}()
	tokens, err := shell.Split(raw)
	if err != nil {
		return a, err
	}
	return args.Parse(spec, tokens)
}

func call[A any](ctx context.Context, body Body[A], h *host.Handle, a A) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return body(ctx, h, a)
}

func renderParseError[A any](spec args.Spec[A], err error) string {
	var perr *args.ParseError
	if errors.As(err, &perr) {
		return perr.Render()
	}
	var tokErr *shell.TokenizeError
	if errors.As(err, &tokErr) {
		return fmt.Sprintf("error: %s: %v\n\n%s", spec.Name, tokErr, usage(spec))
	}
	return "error: " + err.Error()
}

func usage[A any](spec args.Spec[A]) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = ""
		}
	}()
	return spec.Usage()
}
