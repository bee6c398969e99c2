//go:build !android

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"fortio.org/cli"
	"fortio.org/log"

	"floorspin/internal/config"
	"floorspin/internal/debug"
	"floorspin/internal/graphics"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config `file`")
	dotEnv := flag.String("env", ".env", "path to an optional KEY=VALUE `file` loaded before the config")
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	cfg, closer, err := setup(*dotEnv, *configPath)
	if err != nil {
		return log.FErrf("setup: %v", err)
	}
	defer closer.Close()

	v, err := newViewer(&cfg)
	if err != nil {
		return log.FErrf("viewer: %v", err)
	}
	wopts, dopts, err := graphics.OptionsFrom(&cfg)
	if err != nil {
		return log.FErrf("options: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	graphics.Run(ctx, wopts, v, debug.New(dopts))
	return 0
}
