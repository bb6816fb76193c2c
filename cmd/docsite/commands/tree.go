package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/content"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Path string `arg:"" optional:"" help:"Directory below the docs root to start from"`
	JSON bool   `help:"Print navigation items as JSON"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	s, _, err := openSite(cfg, g.Logger)
	if err != nil {
		return err
	}

	entries := s.BuildTree(context.Background(), addressSegments(t.Path, cfg.Content.DocsRoot))
	if t.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Navigation().Tree(entries))
	}
	return printTree(g.Out, entries, 0)
}

func printTree(w io.Writer, entries []content.Entry, depth int) error {
	for _, e := range entries {
		info := e.Info()
		marker := content.Match(e,
			func(*content.File) string { return "" },
			func(*content.Directory) string { return "/" })
		if _, err := fmt.Fprintf(w, "%s%s%s  %s\n", strings.Repeat("  ", depth), info.Slug, marker, info.Title); err != nil {
			return err
		}
		if d, ok := e.(*content.Directory); ok {
			if err := printTree(w, d.Children, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
