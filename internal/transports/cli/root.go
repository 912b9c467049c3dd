package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dbgext/internal/app"
	"dbgext/internal/commands/extinfo"
	"dbgext/internal/config"
	"dbgext/internal/host"
	"dbgext/internal/host/memhost"
	"dbgext/internal/storage"
	"dbgext/internal/storage/sqlite"
)

type options struct {
	configPath string
}

func (o *options) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.NewApp(ctx, cfg)
}

// New создает корневую CLI-команду, которая играет роль хоста отладчика.
func New(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "dbgext",
		Short: "Debugger extension command harness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newInitCmd())
	root.AddCommand(newInvokeCmd(opts))
	root.AddCommand(newShellCmd(opts))
	root.AddCommand(newAuditCmd(opts))

	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (extension %s)\n", version, extinfo.FormatVersion(app.Version))
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Run the load entry point and print what it reports",
		Run: func(cmd *cobra.Command, args []string) {
			v, f, st := app.Initialize()
			fmt.Fprintf(cmd.OutOrStdout(), "version 0x%08X flags %d status %s\n", v, f, st)
		},
	}
}

func newInvokeCmd(opts *options) *cobra.Command {
	var deny []string
	cmd := &cobra.Command{
		Use:   "invoke <command> [raw-args]",
		Short: "Invoke an extension command against an in-memory host",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			hst := memhost.New(cmd.OutOrStdout())
			for _, c := range deny {
				hst.Deny(host.Capability(c))
			}
			raw := ""
			if len(args) == 2 {
				raw = args[1]
			}
			st := a.Call(cmd.Context(), args[0], hst, append([]byte(raw), 0))
			printBreakpoints(cmd.OutOrStdout(), hst)
			fmt.Fprintf(cmd.ErrOrStderr(), "status: %s\n", st)
			if !st.Succeeded() {
				return fmt.Errorf("%s: status %s", args[0], st)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&deny, "deny", nil, "capabilities the host refuses (output, control)")
	return cmd
}

func newAuditCmd(opts *options) *cobra.Command {
	var q storage.AuditQuery
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent command invocations from the audit store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			st, err := sqlite.Open(cfg.Audit.SQLitePath)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer st.Close()

			events, err := st.QueryAudit(cmd.Context(), q)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		},
	}
	cmd.Flags().StringVar(&q.Command, "command", "", "filter by command name")
	cmd.Flags().IntVar(&q.Limit, "limit", 20, "maximum number of events")
	return cmd
}

func printBreakpoints(w io.Writer, hst *memhost.Host) {
	for _, bp := range hst.Breakpoints() {
		id, _ := bp.ID()
		state := "d"
		if bp.Enabled() {
			state = "e"
		}
		line := fmt.Sprintf("%3d %s %-5s %s", id, state, bp.Kind, bp.Offset)
		if bp.Command != "" {
			line += fmt.Sprintf(" %q", bp.Command)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
