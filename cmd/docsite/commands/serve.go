package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docsite/internal/daemon"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	DocsPort  int `help:"Docs port, overriding the configuration"`
	AdminPort int `help:"Admin port, overriding the configuration"`
	// NoWatchConfig disables reloading the log level when the file changes.
	NoWatchConfig bool `help:"Do not reload the configuration file when it changes"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.DocsPort != 0 {
		cfg.Server.DocsPort = s.DocsPort
	}
	if s.AdminPort != 0 {
		cfg.Server.AdminPort = s.AdminPort
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := daemon.Options{Logger: g.Logger}
	if _, statErr := os.Stat(root.Config); statErr == nil && !s.NoWatchConfig && !root.Verbose {
		opts.ConfigPath = root.Config
		opts.Level = g.Level
	}
	d, err := daemon.New(cfg, opts)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}
