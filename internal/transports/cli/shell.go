package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"dbgext/internal/host/memhost"
)

func newShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive debugger-style console over an in-memory host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			le := newLineEditor(cmd.InOrStdin(), out, a.Config.Shell.HistoryFile)
			defer le.Close()

			// Одна сессия хоста: точки останова живут между командами.
			hst := memhost.New(out)
			for {
				line, err := le.ReadLine(a.Config.Shell.Prompt)
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				name, raw, ok := splitCommandLine(line)
				if !ok {
					continue
				}
				switch name {
				case "q", "quit", "exit":
					return nil
				case "bl":
					printBreakpoints(out, hst)
					continue
				}
				if st := a.Call(cmd.Context(), name, hst, append([]byte(raw), 0)); !st.Succeeded() {
					fmt.Fprintf(out, "status %s\n", st)
				}
			}
		},
	}
}

// splitCommandLine отделяет имя команды от сырой строки аргументов; ведущий '!' необязателен.
func splitCommandLine(line string) (name, raw string, ok bool) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "!")
	if line == "" {
		return "", "", false
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, "", true
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace), true
}
