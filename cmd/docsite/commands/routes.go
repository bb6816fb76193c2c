package commands

import (
	"context"
	"encoding/json"
	"fmt"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	JSON bool `help:"Print a JSON array"`
}

func (r *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	s, _, err := openSite(cfg, g.Logger)
	if err != nil {
		return err
	}

	nav := s.Navigation()
	routes := s.ListAllRoutes(context.Background())
	hrefs := make([]string, 0, len(routes))
	for _, route := range routes {
		hrefs = append(hrefs, nav.Href(route...))
	}

	if r.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(hrefs)
	}
	for _, h := range hrefs {
		if _, err := fmt.Fprintln(g.Out, h); err != nil {
			return err
		}
	}
	return nil
}
