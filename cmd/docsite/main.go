package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	global := commands.NewGlobal()
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Serve, export and scaffold a documentation corpus."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(global, cli)
	logger := global.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
}
