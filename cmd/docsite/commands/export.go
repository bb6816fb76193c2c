package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/export"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Output       string `short:"o" help:"Output directory, overriding the configuration"`
	NoCheckLinks bool   `help:"Skip the internal link check"`
	BaseURL      string `help:"Public origin of the site, overriding the configuration"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if e.Output != "" {
		cfg.Export.Output = e.Output
	}
	if e.BaseURL != "" {
		cfg.Site.BaseURL = e.BaseURL
	}
	s, pages, err := openSite(cfg, g.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := export.New(s, pages, export.Options{
		Output:     cfg.Export.Output,
		CheckLinks: cfg.Export.CheckLinks && !e.NoCheckLinks,
		BaseURL:    cfg.Site.BaseURL,
		Logger:     g.Logger,
	}).Export(ctx)

	for _, b := range report.Broken {
		fmt.Fprintf(g.Out, "broken link on %s: %s\n", b.Page, b.URL)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Out, "Exported %d pages to %s in %s\n", report.Pages, cfg.Export.Output, report.Duration.Round(time.Millisecond))
	return err
}
