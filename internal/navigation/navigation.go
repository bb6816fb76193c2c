// Package navigation builds the JSON navigation projections served to the
// site shell: sibling listings, top-level sections, the sidebar and
// breadcrumbs. Results are memoized in navcache caches.
package navigation

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/navcache"
)

// DefaultDocsRoot is the URL prefix under which documents are served.
const DefaultDocsRoot = "docs"

const (
	keyTopLevel = "top-level"
	keySidebar  = "sidebar"
)

// Item is a navigation link. It never carries document bodies.
type Item struct {
	Title    string `json:"title"`
	Href     string `json:"href"`
	Children []Item `json:"children,omitempty"`
}

// Tree is the content source navigation is computed from.
type Tree interface {
	BuildTree(ctx context.Context, segments []string) []content.Entry
	Walk(ctx context.Context, segments []string) ([]content.Entry, error)
}

// Service computes navigation for one corpus.
type Service struct {
	tree     Tree
	docsRoot string
	siblings *navcache.Cache[[]Item]
	site     *navcache.Cache[[]Item]
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDocsRoot sets the first URL segment of document addresses.
func WithDocsRoot(root string) Option {
	return func(s *Service) {
		if root = strings.Trim(root, "/"); root != "" {
			s.docsRoot = root
		}
	}
}

// WithSiblingCache replaces the cache used for sibling listings.
func WithSiblingCache(c *navcache.Cache[[]Item]) Option {
	return func(s *Service) {
		if c != nil {
			s.siblings = c
		}
	}
}

// WithSiteCache replaces the cache used for top-level sections and the sidebar.
func WithSiteCache(c *navcache.Cache[[]Item]) Option {
	return func(s *Service) {
		if c != nil {
			s.site = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Service over tree.
func New(tree Tree, opts ...Option) *Service {
	s := &Service{
		tree:     tree,
		docsRoot: DefaultDocsRoot,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.siblings == nil {
		s.siblings = navcache.New[[]Item](navcache.WithName("siblings"))
	}
	if s.site == nil {
		s.site = navcache.New[[]Item](navcache.WithName("site"))
	}
	return s
}

// DocsRoot returns the document URL prefix segment.
func (s *Service) DocsRoot() string {
	return s.docsRoot
}

// Href returns the document URL for a content path.
func (s *Service) Href(fullPath ...string) string {
	if len(fullPath) == 0 {
		return "/" + s.docsRoot
	}
	return "/" + s.docsRoot + "/" + path.Join(fullPath...)
}

// Siblings lists the entries of the section addressed by pathname, in
// order. pathname must start with the docs root and name a section; any
// other shape yields an empty list, which is not cached. Results are cached
// per exact pathname, empty listings included.
func (s *Service) Siblings(ctx context.Context, pathname string) ([]Item, error) {
	segments := splitPath(pathname)
	if len(segments) < 2 || segments[0] != s.docsRoot {
		return []Item{}, nil
	}
	section := segments[1]

	items, err := s.siblings.GetOrLoad(ctx, pathname, func(ctx context.Context) ([]Item, error) {
		entries := s.tree.BuildTree(ctx, []string{section})
		s.logger.Debug("Computed sibling navigation",
			logfields.Section(section), logfields.Count(len(entries)))
		return s.items(entries, false), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneItems(items), nil
}

// TopLevelSections lists the corpus sections. When the corpus cannot be
// read the result is a single link to the docs root, which is not cached.
func (s *Service) TopLevelSections(ctx context.Context) []Item {
	items, err := s.site.GetOrLoad(ctx, keyTopLevel, func(ctx context.Context) ([]Item, error) {
		root, err := s.tree.Walk(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := []Item{}
		for _, e := range root {
			if d, ok := e.(*content.Directory); ok {
				out = append(out, Item{Title: d.Title, Href: s.Href(d.FullPath...)})
			}
		}
		return out, nil
	})
	if err != nil {
		s.logger.Warn("Top-level sections unavailable; using fallback", logfields.Error(err))
		return []Item{{Title: "Documentation", Href: s.Href()}}
	}
	return cloneItems(items)
}

// Sidebar lists every section with its direct children. When the corpus
// cannot be read the sidebar is empty.
func (s *Service) Sidebar(ctx context.Context) []Item {
	items, err := s.site.GetOrLoad(ctx, keySidebar, func(ctx context.Context) ([]Item, error) {
		root, err := s.tree.Walk(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := []Item{}
		for _, e := range root {
			d, ok := e.(*content.Directory)
			if !ok {
				continue
			}
			out = append(out, Item{
				Title:    d.Title,
				Href:     s.Href(d.FullPath...),
				Children: s.items(d.Children, false),
			})
		}
		return out, nil
	})
	if err != nil {
		s.logger.Warn("Sidebar unavailable", logfields.Error(err))
		return []Item{}
	}
	return cloneItems(items)
}

// cloneItems copies items and their children so callers can modify what
// they receive without touching cached values.
func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Children = cloneItems(it.Children)
	}
	return out
}

// Sweep drops expired cache entries and returns how many were removed.
func (s *Service) Sweep() int {
	return s.siblings.Sweep() + s.site.Sweep()
}

// Invalidate drops every cached result.
func (s *Service) Invalidate() {
	s.siblings.Purge()
	s.site.Purge()
}

// items projects entries to links; with deep set, directory children are included.
func (s *Service) items(entries []content.Entry, deep bool) []Item {
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, content.Match(e,
			func(f *content.File) Item {
				return Item{Title: f.Title, Href: s.Href(f.FullPath...)}
			},
			func(d *content.Directory) Item {
				it := Item{Title: d.Title, Href: s.Href(d.FullPath...)}
				if deep {
					it.Children = s.items(d.Children, true)
				}
				return it
			}))
	}
	return out
}

// Items projects entries to links without descending into directories.
func (s *Service) Items(entries []content.Entry) []Item {
	return s.items(entries, false)
}

// Tree projects entries, directories included with all descendants.
func (s *Service) Tree(entries []content.Entry) []Item {
	return s.items(entries, true)
}

func splitPath(pathname string) []string {
	parts := strings.Split(pathname, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
