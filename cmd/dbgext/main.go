package main

import (
	"context"
	"os"

	"dbgext/internal/transports/cli"
	"dbgext/pkg/logger"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	lg := logger.New()

	ctx := context.Background()
	root := cli.New(buildVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		lg.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
