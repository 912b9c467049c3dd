// Package memhost реализует хост отладчика в памяти: консоль и таблицу точек останова.
// Используется CLI-обвязкой и тестами вместо настоящего движка.
package memhost

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"dbgext/internal/host"
)

// Host хранит состояние симулированного движка.
type Host struct {
	mu      sync.Mutex
	console io.Writer
	buf     bytes.Buffer

	denied      map[host.Capability]bool
	outputErr   *host.Error
	addErr      *host.Error
	bindErr     *host.Error
	nextID      uint32
	breakpoints []*Breakpoint
}

// New создает хост; если console == nil, вывод копится во внутреннем буфере.
func New(console io.Writer) *Host {
	return &Host{console: console}
}

// Deny делает возможность недоступной для Query.
func (h *Host) Deny(c host.Capability) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.denied == nil {
		h.denied = make(map[host.Capability]bool)
	}
	h.denied[c] = true
	return h
}

// FailOutput заставляет вывод в консоль возвращать код code.
func (h *Host) FailOutput(code host.Status) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputErr = &host.Error{Op: "output", Code: code}
	return h
}

// FailAddBreakpoint заставляет создание точки останова возвращать код code.
func (h *Host) FailAddBreakpoint(code host.Status) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addErr = &host.Error{Op: "add breakpoint", Code: code}
	return h
}

// FailBind заставляет настройку созданной точки останова возвращать код code.
func (h *Host) FailBind(code host.Status) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bindErr = &host.Error{Op: "set breakpoint", Code: code}
	return h
}

// Query реализует host.Client.
func (h *Host) Query(c host.Capability) (any, error) {
	h.mu.Lock()
	denied := h.denied[c]
	h.mu.Unlock()
	if denied {
		return nil, &host.Error{Op: fmt.Sprintf("query %s", c), Code: host.StatusNoInterface}
	}
	switch c {
	case host.CapabilityOutput, host.CapabilityControl:
		return h, nil
	default:
		return nil, &host.Error{Op: fmt.Sprintf("query %s", c), Code: host.StatusNoInterface}
	}
}

// Output реализует host.Output.
func (h *Host) Output(mask uint32, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.outputErr != nil {
		return h.outputErr
	}
	if h.console != nil {
		if _, err := io.WriteString(h.console, text); err != nil {
			return &host.Error{Op: "output", Code: host.StatusFail}
		}
		return nil
	}
	h.buf.WriteString(text)
	return nil
}

// AddBreakpoint реализует host.Control. AnyID выдает следующий свободный идентификатор.
func (h *Host) AddBreakpoint(kind host.BreakpointKind, id uint32) (host.Breakpoint, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.addErr != nil {
		return nil, h.addErr
	}
	anyID := id == host.AnyID
	if anyID {
		id = h.nextID
	}
	for _, bp := range h.breakpoints {
		if bp.id == id {
			return nil, &host.Error{Op: fmt.Sprintf("add breakpoint %d", id), Code: host.StatusFail}
		}
	}
	if id >= h.nextID {
		h.nextID = id + 1
	}
	bp := &Breakpoint{id: id, Kind: kind, RequestedAny: anyID, failErr: h.bindErr}
	h.breakpoints = append(h.breakpoints, bp)
	return bp, nil
}

// Text возвращает накопленный вывод консоли (только без внешнего writer).
func (h *Host) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.String()
}

// Breakpoints возвращает копию таблицы точек останова.
func (h *Host) Breakpoints() []Breakpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Breakpoint, 0, len(h.breakpoints))
	for _, bp := range h.breakpoints {
		out = append(out, *bp)
	}
	return out
}

// Breakpoint описывает точку останова в симулированном движке.
type Breakpoint struct {
	id           uint32
	Kind         host.BreakpointKind
	RequestedAny bool
	Offset       string
	Command      string
	Flags        uint32
	failErr      *host.Error
}

func (b *Breakpoint) ID() (uint32, error) { return b.id, nil }

func (b *Breakpoint) SetOffsetExpression(expr string) error {
	if b.failErr != nil {
		return b.failErr
	}
	b.Offset = expr
	return nil
}

func (b *Breakpoint) SetCommand(cmd string) error {
	if b.failErr != nil {
		return b.failErr
	}
	b.Command = cmd
	return nil
}

func (b *Breakpoint) AddFlags(flags uint32) error {
	if b.failErr != nil {
		return b.failErr
	}
	b.Flags |= flags
	return nil
}

// Enabled сообщает, включена ли точка останова.
func (b Breakpoint) Enabled() bool { return b.Flags&host.BreakpointEnabled != 0 }
