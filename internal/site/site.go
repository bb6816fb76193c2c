// Package site is the boundary over a documentation corpus: document
// lookup, path classification, tree building, route enumeration and
// navigation, wired from one content store.
package site

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/navcache"
	"git.home.luguber.info/inful/docsite/internal/navigation"
)

// Config wires a Site.
type Config struct {
	Content content.Options
	// DocsRoot is the first URL segment of document addresses.
	DocsRoot      string
	CacheTTL      time.Duration
	CacheCapacity int
	// Clock overrides time.Now for the navigation caches.
	Clock    navcache.Clock
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// Site resolves documents and navigation for one corpus.
type Site struct {
	builder    *content.Builder
	classifier *content.Classifier
	enumerator *content.Enumerator
	nav        *navigation.Service
	logger     *slog.Logger
}

// New builds a Site reading from fsys.
func New(fsys fs.FS, cfg Config) *Site {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := metrics.OrNoop(cfg.Recorder)

	copts := cfg.Content
	if copts.Logger == nil {
		copts.Logger = logger
	}
	if copts.Recorder == nil {
		copts.Recorder = rec
	}

	cacheOpts := func(name string) []navcache.Option {
		return []navcache.Option{
			navcache.WithName(name),
			navcache.WithTTL(cfg.CacheTTL),
			navcache.WithCapacity(cfg.CacheCapacity),
			navcache.WithClock(cfg.Clock),
			navcache.WithRecorder(rec),
		}
	}

	builder := content.NewBuilder(fsys, copts)
	return &Site{
		builder:    builder,
		classifier: content.NewClassifier(fsys, copts),
		enumerator: content.NewEnumerator(builder),
		nav: navigation.New(builder,
			navigation.WithDocsRoot(cfg.DocsRoot),
			navigation.WithLogger(logger),
			navigation.WithSiblingCache(navcache.New[[]navigation.Item](cacheOpts("siblings")...)),
			navigation.WithSiteCache(navcache.New[[]navigation.Item](cacheOpts("site")...)),
		),
		logger: logger,
	}
}

// Navigation exposes the navigation service.
func (s *Site) Navigation() *navigation.Service {
	return s.nav
}

// DocsRoot returns the document URL prefix segment.
func (s *Site) DocsRoot() string {
	return s.nav.DocsRoot()
}

// GetDocument loads the document slug directly inside section.
func (s *Site) GetDocument(ctx context.Context, section, slug string) (*content.Document, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	f, ok := s.builder.LoadFile([]string{section, slug})
	if !ok {
		return nil, false
	}
	return content.NewDocument(f, false), true
}

// GetDocumentsIn lists the documents directly inside section, in order.
// Subdirectories are not included.
func (s *Site) GetDocumentsIn(ctx context.Context, section string) []*content.Document {
	docs := []*content.Document{}
	for _, e := range s.builder.BuildTree(ctx, []string{section}) {
		if f, ok := e.(*content.File); ok {
			docs = append(docs, content.NewDocument(f, false))
		}
	}
	return docs
}

// GetPathType classifies segments.
func (s *Site) GetPathType(segments []string) content.Kind {
	return s.Classify(segments).Kind
}

// Classify resolves segments to a kind and the canonical path they name.
func (s *Site) Classify(segments []string) content.Resolution {
	return s.classifier.Classify(segments)
}

// GetDocumentByPath resolves segments to a document, canonical scheme
// first, then the legacy flat scheme.
func (s *Site) GetDocumentByPath(ctx context.Context, segments []string) (*content.Document, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	res := s.classifier.Classify(segments)
	if res.Kind != content.KindFile {
		return nil, false
	}
	f, ok := s.builder.LoadFile(res.Path)
	if !ok {
		return nil, false
	}
	return content.NewDocument(f, res.Legacy), true
}

// BuildTree returns the ordered tree below segments.
func (s *Site) BuildTree(ctx context.Context, segments []string) []content.Entry {
	return s.builder.BuildTree(ctx, segments)
}

// ListAllRoutes lists every resolvable address.
func (s *Site) ListAllRoutes(ctx context.Context) [][]string {
	return s.enumerator.ListAllRoutes(ctx)
}

// GetSiblingNavigation lists the section entries around pathname.
func (s *Site) GetSiblingNavigation(ctx context.Context, pathname string) ([]navigation.Item, error) {
	return s.nav.Siblings(ctx, pathname)
}

// GetTopLevelSections lists the corpus sections.
func (s *Site) GetTopLevelSections(ctx context.Context) []navigation.Item {
	return s.nav.TopLevelSections(ctx)
}

// Sidebar lists every section with its direct children.
func (s *Site) Sidebar(ctx context.Context) []navigation.Item {
	return s.nav.Sidebar(ctx)
}

// Page is a resolved address: a document, a directory, or nothing.
type Page struct {
	Resolution content.Resolution
	Document   *content.Document
	Directory  *content.Directory
}

// Found reports whether the page addresses something.
func (p Page) Found() bool {
	return p.Document != nil || p.Directory != nil
}

// Resolve classifies segments and loads what they address. Content that
// disappears between classification and loading resolves to nothing.
func (s *Site) Resolve(ctx context.Context, segments []string) Page {
	res := s.classifier.Classify(segments)
	page := Page{Resolution: res}
	switch res.Kind {
	case content.KindFile:
		if f, ok := s.builder.LoadFile(res.Path); ok {
			page.Document = content.NewDocument(f, res.Legacy)
		}
	case content.KindDirectory:
		if d, ok := s.builder.LoadDirectory(ctx, res.Path); ok {
			page.Directory = d
		}
	case content.KindNotFound:
	}
	if !page.Found() {
		page.Resolution = content.Resolution{}
	}
	return page
}

// Sweep drops expired navigation cache entries.
func (s *Site) Sweep() int {
	return s.nav.Sweep()
}
