package render

import (
	"bytes"
	"context"
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/navigation"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Result is a rendered page.
type Result struct {
	Status int
	Body   []byte
	// ETag is the quoted document fingerprint, empty for non-document pages.
	ETag string
	Kind string
	// Location is the canonical address a legacy address redirects to.
	Location string
}

// Pages renders site addresses with their navigation chrome. It is shared by
// the HTTP server and the static exporter.
type Pages struct {
	site      *site.Site
	renderer  *Renderer
	siteTitle string
}

// NewPages returns a Pages rendering s with r.
func NewPages(s *site.Site, r *Renderer, siteTitle string) *Pages {
	return &Pages{site: s, renderer: r, siteTitle: siteTitle}
}

func (p *Pages) view(ctx context.Context, current string) View {
	return View{
		SiteTitle:   p.siteTitle,
		Current:     current,
		DocsHref:    p.site.Navigation().Href(),
		Sections:    p.site.GetTopLevelSections(ctx),
		Sidebar:     p.site.Sidebar(ctx),
		Breadcrumbs: navigation.Breadcrumbs(current),
	}
}

// Index renders the docs root.
func (p *Pages) Index(ctx context.Context) (Result, error) {
	var buf bytes.Buffer
	if err := p.renderer.Index(&buf, p.view(ctx, p.site.Navigation().Href())); err != nil {
		return Result{}, err
	}
	return Result{Status: http.StatusOK, Body: buf.Bytes(), Kind: KindDirectory}, nil
}

// Path renders the page addressed by segments below the docs root. A legacy
// flat address renders a permanent redirect to the canonical address, so
// relative links in the document resolve against the right directory. An
// address that resolves to nothing renders the not-found page with status 404.
func (p *Pages) Path(ctx context.Context, segments []string) (Result, error) {
	nav := p.site.Navigation()
	page := p.site.Resolve(ctx, segments)
	var buf bytes.Buffer

	switch {
	case page.Document != nil && page.Document.Legacy:
		location := nav.Href(page.Document.Path...)
		if err := p.renderer.Redirect(&buf, location); err != nil {
			return Result{}, err
		}
		return Result{
			Status:   http.StatusPermanentRedirect,
			Body:     buf.Bytes(),
			Kind:     KindRedirect,
			Location: location,
		}, nil

	case page.Document != nil:
		current := nav.Href(page.Document.Path...)
		v := p.view(ctx, current)
		siblings, err := p.site.GetSiblingNavigation(ctx, current)
		if err != nil {
			return Result{}, err
		}
		v.Siblings = siblings
		if err := p.renderer.Document(&buf, page.Document, v); err != nil {
			return Result{}, err
		}
		return Result{
			Status: http.StatusOK,
			Body:   buf.Bytes(),
			ETag:   `"` + page.Document.Fingerprint + `"`,
			Kind:   KindDocument,
		}, nil

	case page.Directory != nil:
		current := nav.Href(page.Directory.FullPath...)
		items := nav.Items(page.Directory.Children)
		if err := p.renderer.Directory(&buf, page.Directory, items, p.view(ctx, current)); err != nil {
			return Result{}, err
		}
		return Result{Status: http.StatusOK, Body: buf.Bytes(), Kind: KindDirectory}, nil

	default:
		if err := p.renderer.NotFound(&buf, p.view(ctx, nav.Href(segments...))); err != nil {
			return Result{}, err
		}
		return Result{Status: http.StatusNotFound, Body: buf.Bytes(), Kind: KindNotFound}, nil
	}
}
