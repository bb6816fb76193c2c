package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// ClassifyCmd implements the 'classify' command.
type ClassifyCmd struct {
	Address string `arg:"" help:"Address such as /docs/guides/install or guides-install"`
}

func (c *ClassifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	s, _, err := openSite(cfg, g.Logger)
	if err != nil {
		return err
	}

	res := s.Classify(addressSegments(c.Address, cfg.Content.DocsRoot))
	if !res.Found() {
		return errors.NotFoundError("address does not resolve").
			WithContext("address", c.Address).
			Build()
	}

	legacy := ""
	if res.Legacy {
		legacy = " (legacy)"
	}
	_, err = fmt.Fprintf(g.Out, "%s\t%s%s\n", res.Kind, s.Navigation().Href(res.Path...), legacy)
	return err
}
