package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Section     string `arg:"" help:"Section directory, e.g. guides"`
	Slug        string `arg:"" help:"File name without extension, e.g. getting-started"`
	Title       string `short:"t" required:"" help:"Document title"`
	Description string `short:"d" help:"One line summary"`
	Order       int    `default:"1" help:"Position among siblings; lower comes first"`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	res, err := scaffold.New(cfg.Content.Root, cfg.Content.Extension, cfg.Content.DocsRoot).Create(scaffold.Request{
		Section:     n.Section,
		Slug:        n.Slug,
		Title:       n.Title,
		Description: n.Description,
		Order:       n.Order,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Created %s\n", res.Path)
	fmt.Fprintf(g.Out, "Address: %s\n", res.Href)
	if res.LegacyHref != "" {
		fmt.Fprintf(g.Out, "Legacy address: %s\n", res.LegacyHref)
	}
	return nil
}
