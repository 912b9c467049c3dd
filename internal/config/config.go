package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCommandTemplate передает имя процесса и фильтр командной строки обработчику
// создания процесса на стороне хоста.
const DefaultCommandTemplate = `dx @$scriptContents.handleProcessCreation("{{esc .Process}}"{{if .Cmdline}}, "{{esc .Cmdline}}"{{end}})`

// Config описывает параметры расширения.
type Config struct {
	Extension struct {
		LogLevel string `yaml:"log_level"`
		LogPath  string `yaml:"log_path"`
	} `yaml:"extension"`
	Audit struct {
		Enabled       bool   `yaml:"enabled"`
		SQLitePath    string `yaml:"sqlite_path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"audit"`
	BPProc struct {
		OffsetExpression string `yaml:"offset_expression"`
		CommandTemplate  string `yaml:"command_template"`
		LeaveDisabled    bool   `yaml:"leave_disabled"`
	} `yaml:"bpproc"`
	Shell struct {
		HistoryFile string `yaml:"history_file"`
		Prompt      string `yaml:"prompt"`
	} `yaml:"shell"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Extension.LogLevel = "info"
	cfg.Audit.Enabled = false
	cfg.Audit.SQLitePath = "dbgext-audit.db"
	cfg.Audit.RetentionDays = 30
	cfg.BPProc.OffsetExpression = "nt!NtCreateUserProcess"
	cfg.BPProc.CommandTemplate = DefaultCommandTemplate
	cfg.Shell.Prompt = "0: kd> "
	return cfg
}

// Load читает конфиг из файла YAML, поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задает оператор.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
