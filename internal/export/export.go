// Package export pre-generates every route of a site as static HTML and
// verifies the internal links of the generated pages.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkverify"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Options configures an export.
type Options struct {
	// Output is the directory pages are written under.
	Output     string
	CheckLinks bool
	// BaseURL identifies links to the site itself; defaults to http://localhost.
	BaseURL string
	Logger  *slog.Logger
}

// Report summarizes an export.
type Report struct {
	Pages    int                     `json:"pages"`
	Broken   []linkverify.BrokenLink `json:"broken,omitempty"`
	Duration time.Duration           `json:"duration"`
}

// Exporter writes static pages for a site.
type Exporter struct {
	site  *site.Site
	pages *render.Pages
	opts  Options
}

// New returns an Exporter.
func New(s *site.Site, pages *render.Pages, opts Options) *Exporter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost"
	}
	return &Exporter{site: s, pages: pages, opts: opts}
}

type generated struct {
	href string
	body []byte
}

// Export renders the docs index and every enumerated route. Each page is
// written to <output>/<href>/index.html. With link checking enabled, broken
// internal links are reported and make the export fail after all pages are
// written.
func (e *Exporter) Export(ctx context.Context) (Report, error) {
	start := time.Now()
	nav := e.site.Navigation()
	log := e.opts.Logger

	if e.opts.Output == "" {
		return Report{}, errors.ValidationError("export output directory is required").Build()
	}

	idx, err := e.pages.Index(ctx)
	if err != nil {
		return Report{}, errors.WrapError(err, errors.CategoryRender, "failed to render docs index").Build()
	}
	out := []generated{{href: nav.Href(), body: idx.Body}}

	for _, route := range e.site.ListAllRoutes(ctx) {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		href := nav.Href(route...)
		res, err := e.pages.Path(ctx, route)
		if err != nil {
			return Report{}, errors.WrapError(err, errors.CategoryRender, "failed to render page").
				WithContext("route", href).Build()
		}
		if res.Kind == render.KindNotFound {
			// Content changed between enumeration and rendering.
			log.Warn("Route vanished during export", logfields.Route(href))
			continue
		}
		out = append(out, generated{href: href, body: res.Body})
	}

	for _, g := range out {
		if err := e.write(g); err != nil {
			return Report{}, err
		}
	}
	report := Report{Pages: len(out)}

	if e.opts.CheckLinks {
		report.Broken, err = e.checkLinks(out)
		if err != nil {
			return report, err
		}
	}
	report.Duration = time.Since(start)

	log.Info("Export complete",
		logfields.Count(report.Pages),
		slog.Int("broken_links", len(report.Broken)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))

	if len(report.Broken) > 0 {
		return report, errors.ExportError(fmt.Sprintf("%d broken internal links", len(report.Broken))).
			WithContext("first", report.Broken[0].Target).Build()
	}
	return report, nil
}

func (e *Exporter) write(g generated) error {
	rel := filepath.FromSlash(strings.TrimPrefix(g.href, "/"))
	dir := filepath.Join(e.opts.Output, rel)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // public HTML output
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).Build()
	}
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, g.body, 0o644); err != nil { //nolint:gosec // public HTML output
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			WithContext("path", file).Build()
	}
	return nil
}

func (e *Exporter) checkLinks(pages []generated) ([]linkverify.BrokenLink, error) {
	checker := linkverify.NewChecker(e.site.DocsRoot())
	for _, g := range pages {
		checker.AddPage(g.href)
	}

	var broken []linkverify.BrokenLink
	for _, g := range pages {
		links, err := linkverify.Extract(bytes.NewReader(g.body), e.opts.BaseURL)
		if err != nil {
			return nil, err
		}
		found := checker.Check(g.href, links)
		for _, b := range found {
			e.opts.Logger.Warn("Broken internal link",
				logfields.Path(b.Page), logfields.Route(b.Target), slog.String("url", b.URL))
		}
		broken = append(broken, found...)
	}
	return broken, nil
}
