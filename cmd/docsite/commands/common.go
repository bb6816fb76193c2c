// Package commands implements the docsite command line.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	// Level controls Logger and may be changed while serving.
	Level *slog.LevelVar
	// Out receives command output; logs go to Err.
	Out io.Writer
	Err io.Writer
}

// NewGlobal returns a Global writing to the process streams.
func NewGlobal() *Global {
	return &Global{Out: os.Stdout, Err: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Content string           `help:"Content root, overriding the configuration" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve    ServeCmd    `cmd:"" help:"Serve the documentation site and admin endpoints"`
	Routes   RoutesCmd   `cmd:"" help:"Print every page address"`
	Tree     TreeCmd     `cmd:"" help:"Print the ordered content tree"`
	Classify ClassifyCmd `cmd:"" help:"Report what an address resolves to"`
	Export   ExportCmd   `cmd:"" help:"Write every page as static HTML and check links"`
	New      NewCmd      `cmd:"" help:"Create a new document"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	g.Level = new(slog.LevelVar)
	if c.Verbose {
		g.Level.Set(slog.LevelDebug)
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Err, &slog.HandlerOptions{Level: g.Level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the configuration file. A missing file at the default
// location means defaults; a missing file named explicitly is an error.
// Logging is reconfigured from the file unless --verbose is set.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(c.Config); os.IsNotExist(err) && c.Config == config.DefaultPath {
		g.Logger.Debug("No configuration file; using defaults", slog.String("path", c.Config))
		cfg = config.Default()
	} else {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if !c.Verbose {
			g.Logger = cfg.Logging.NewLeveledLogger(g.Err, g.Level)
			slog.SetDefault(g.Logger)
		}
	}
	if c.Content != "" {
		cfg.Content.Root = c.Content
	}
	return cfg, nil
}

// openSite builds the site and page renderer for cfg.
func openSite(cfg *config.Config, logger *slog.Logger) (*site.Site, *render.Pages, error) {
	s := site.New(content.DirStore(cfg.Content.Root), site.Config{
		Content:       cfg.ContentOptions(),
		DocsRoot:      cfg.Content.DocsRoot,
		CacheTTL:      cfg.Navigation.CacheTTL,
		CacheCapacity: cfg.Navigation.CacheCapacity,
		Logger:        logger,
	})
	r, err := render.New()
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryRender, "failed to load page templates").Build()
	}
	return s, render.NewPages(s, r, cfg.Site.Title), nil
}

// addressSegments turns "/docs/a/b", "docs/a/b" or "a/b" into segments below
// the docs root.
func addressSegments(address, docsRoot string) []string {
	var segments []string
	for _, s := range strings.Split(address, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) > 0 && segments[0] == docsRoot {
		segments = segments[1:]
	}
	return segments
}
