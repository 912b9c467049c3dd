package core

import (
	"context"
	"fmt"
	"sort"

	"dbgext/internal/host"
	"dbgext/internal/storage"
)

// Registry хранит экспортируемые команды и выполняет их через общий конвейер.
// Заполняется один раз при загрузке расширения, дальше только читается.
type Registry struct {
	reporter *Reporter
	commands map[string]Command
	names    map[string]Command
}

// NewRegistry создает пустой реестр команд.
func NewRegistry(rep *Reporter) *Registry {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Registry{
		reporter: rep,
		commands: make(map[string]Command),
		names:    make(map[string]Command),
	}
}

// Register добавляет команду; имя и псевдонимы должны быть уникальны.
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command is nil: %w", errInvalidArguments)
	}
	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name is empty: %w", errInvalidArguments)
	}
	if err := cmd.Check(); err != nil {
		return fmt.Errorf("check %s: %w", name, err)
	}
	all := append([]string{name}, cmd.Aliases()...)
	for _, n := range all {
		if _, exists := r.names[n]; exists {
			return fmt.Errorf("%s: %w", n, errCommandExists)
		}
	}
	for _, n := range all {
		r.names[n] = cmd
	}
	r.commands[name] = cmd
	return nil
}

// Lookup находит команду по имени или псевдониму.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.names[name]
	return cmd, ok
}

// Call вызывает команду по имени. Неизвестное имя сообщается так же, как ошибка разбора.
func (r *Registry) Call(ctx context.Context, name string, client host.Client, raw string) host.Status {
	cmd, ok := r.Lookup(name)
	if !ok {
		err := fmt.Errorf("%q: %w", name, errUnknownCommand)
		r.reporter.Report(ctx, host.NewHandle(client), name, "error: "+err.Error(), false)
		r.reporter.record(ctx, name, raw, storage.OutcomeParseError, host.StatusFail, err)
		return host.StatusFail
	}
	return cmd.Run(ctx, r.reporter, client, raw)
}

// Commands возвращает зарегистрированные команды, отсортированные по имени.
func (r *Registry) Commands() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
