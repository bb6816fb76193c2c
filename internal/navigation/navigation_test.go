package navigation

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/navcache"
)

// countingFS counts directory listings to observe cache reuse.
type countingFS struct {
	fs.FS
	readDirs atomic.Int32
}

func (c *countingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	c.readDirs.Add(1)
	return fs.ReadDir(c.FS, name)
}

func page(fm string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + fm + "\n---\nbody\n")}
}

func corpus() fstest.MapFS {
	return fstest.MapFS{
		"guides/index.mdx":          page("title: Guides\norder: 2"),
		"guides/install.mdx":        page("title: Install\norder: 1"),
		"guides/configure.mdx":      page("title: Configure\norder: 2"),
		"guides/advanced/index.mdx": page("title: Advanced Topics\norder: 3"),
		"guides/advanced/tune.mdx":  page("title: Tuning"),
		"api/index.mdx":             page("title: API\norder: 1"),
		"api/auth.mdx":              page("title: Auth"),
		"empty/.keep":               {Data: []byte{}},
		"root-page.mdx":             page("title: Root"),
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func newService(fsys fs.FS, clock *fakeClock) *Service {
	builder := content.NewBuilder(fsys, content.Options{Logger: quiet()})
	return New(builder,
		WithLogger(quiet()),
		WithSiblingCache(navcache.New[[]Item](navcache.WithClock(clock.Now))),
		WithSiteCache(navcache.New[[]Item](navcache.WithClock(clock.Now))),
	)
}

func TestSiblings_ListsSectionInOrder(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})

	items, err := s.Siblings(context.Background(), "/docs/guides/configure")
	require.NoError(t, err)
	require.Equal(t, []Item{
		{Title: "Install", Href: "/docs/guides/install"},
		{Title: "Configure", Href: "/docs/guides/configure"},
		{Title: "Advanced Topics", Href: "/docs/guides/advanced"},
	}, items)
}

func TestSiblings_InvalidShapesAreEmpty(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})
	ctx := context.Background()

	for _, p := range []string{"", "/", "/docs", "/blog/guides/install", "guides/install"} {
		items, err := s.Siblings(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, items)
		require.Empty(t, items, "pathname %q", p)
	}
	require.Equal(t, 0, s.siblings.Len(), "invalid shapes are not cached")
}

func TestSiblings_UnknownSectionIsEmptyAndCached(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})

	items, err := s.Siblings(context.Background(), "/docs/missing/page")
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 1, s.siblings.Len())
}

func TestSiblings_CacheReuseAndRefresh(t *testing.T) {
	fsys := &countingFS{FS: corpus()}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(fsys, clock)
	ctx := context.Background()

	first, err := s.Siblings(ctx, "/docs/guides/install")
	require.NoError(t, err)
	afterFirst := fsys.readDirs.Load()
	require.Positive(t, afterFirst)

	clock.now = clock.now.Add(4 * time.Minute)
	second, err := s.Siblings(ctx, "/docs/guides/install")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, afterFirst, fsys.readDirs.Load(), "no traversal within TTL")

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = s.Siblings(ctx, "/docs/guides/install")
	require.NoError(t, err)
	require.Greater(t, fsys.readDirs.Load(), afterFirst, "expired entry is recomputed")
}

func TestSiblings_KeyedByExactPathname(t *testing.T) {
	fsys := &countingFS{FS: corpus()}
	s := newService(fsys, &fakeClock{now: time.Now()})
	ctx := context.Background()

	_, err := s.Siblings(ctx, "/docs/guides/install")
	require.NoError(t, err)
	_, err = s.Siblings(ctx, "/docs/guides/configure")
	require.NoError(t, err)
	require.Equal(t, []string{"/docs/guides/install", "/docs/guides/configure"}, s.siblings.Keys())
}

func TestSiblings_CanceledContext(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Siblings(ctx, "/docs/guides/install")
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 0, s.siblings.Len())
}

func TestTopLevelSections(t *testing.T) {
	fsys := &countingFS{FS: corpus()}
	s := newService(fsys, &fakeClock{now: time.Now()})
	ctx := context.Background()

	items := s.TopLevelSections(ctx)
	require.Equal(t, []Item{
		{Title: "Empty", Href: "/docs/empty"},
		{Title: "API", Href: "/docs/api"},
		{Title: "Guides", Href: "/docs/guides"},
	}, items)

	reads := fsys.readDirs.Load()
	require.Equal(t, items, s.TopLevelSections(ctx))
	require.Equal(t, reads, fsys.readDirs.Load(), "memoized")
}

func TestTopLevelSections_FallbackOnFailure(t *testing.T) {
	s := newService(fstest.MapFS{}, &fakeClock{now: time.Now()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Equal(t, []Item{{Title: "Documentation", Href: "/docs"}}, s.TopLevelSections(ctx))
	require.Equal(t, 0, s.site.Len(), "fallback is not cached")
}

func TestSidebar(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})

	sidebar := s.Sidebar(context.Background())
	require.Len(t, sidebar, 3)
	require.Equal(t, "Guides", sidebar[2].Title)
	require.Equal(t, []Item{
		{Title: "Install", Href: "/docs/guides/install"},
		{Title: "Configure", Href: "/docs/guides/configure"},
		{Title: "Advanced Topics", Href: "/docs/guides/advanced"},
	}, sidebar[2].Children)
	require.Empty(t, sidebar[0].Children)
}

func TestTreeIncludesDescendants(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})
	builder := content.NewBuilder(corpus(), content.Options{Logger: quiet()})

	tree := s.Tree(builder.BuildTree(context.Background(), []string{"guides"}))
	require.Len(t, tree, 3)
	require.Equal(t, []Item{{Title: "Tuning", Href: "/docs/guides/advanced/tune"}}, tree[2].Children)
}

func TestSweepAndInvalidate(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := newService(corpus(), clock)
	ctx := context.Background()
	_, _ = s.Siblings(ctx, "/docs/guides/install")
	s.TopLevelSections(ctx)

	require.Equal(t, 0, s.Sweep())
	clock.now = clock.now.Add(10 * time.Minute)
	require.Equal(t, 2, s.Sweep())

	_, _ = s.Siblings(ctx, "/docs/api/auth")
	s.Invalidate()
	require.Equal(t, 0, s.siblings.Len())
}

func TestCustomDocsRoot(t *testing.T) {
	builder := content.NewBuilder(corpus(), content.Options{Logger: quiet()})
	s := New(builder, WithDocsRoot("/handbook/"), WithLogger(quiet()))

	items, err := s.Siblings(context.Background(), "/handbook/api/auth")
	require.NoError(t, err)
	require.Equal(t, []Item{{Title: "Auth", Href: "/handbook/api/auth"}}, items)
	require.Equal(t, "/handbook", s.Href())
}

func TestBreadcrumbs(t *testing.T) {
	require.Equal(t, []Crumb{
		{Title: "Home", Href: "/"},
		{Title: "Docs", Href: "/docs"},
		{Title: "Guides", Href: "/docs/guides"},
		{Title: "Getting Started"},
	}, Breadcrumbs("/docs/guides/getting-started"))

	require.Equal(t, []Crumb{{Title: "Home", Href: "/"}}, Breadcrumbs("/"))
}

// gatedTree blocks BuildTree until released.
type gatedTree struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedTree) BuildTree(context.Context, []string) []content.Entry {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return []content.Entry{&content.File{EntryInfo: content.EntryInfo{
		Slug: "install", Title: "Install", FullPath: []string{"guides", "install"},
	}}}
}

func (g *gatedTree) Walk(context.Context, []string) ([]content.Entry, error) {
	return nil, nil
}

func TestSiblings_CanceledCallerDoesNotFailConcurrentCallers(t *testing.T) {
	tree := &gatedTree{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(tree, WithLogger(quiet()))

	firstCtx, cancel := context.WithCancel(context.Background())
	go func() { _, _ = s.Siblings(firstCtx, "/docs/guides") }()
	<-tree.entered

	type result struct {
		items []Item
		err   error
	}
	second := make(chan result, 1)
	go func() {
		items, err := s.Siblings(context.Background(), "/docs/guides")
		second <- result{items, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(tree.release)

	got := <-second
	require.NoError(t, got.err)
	require.Equal(t, []Item{{Title: "Install", Href: "/docs/guides/install"}}, got.items)
}

func TestSiblings_ResultsAreCopies(t *testing.T) {
	s := newService(corpus(), &fakeClock{now: time.Now()})
	ctx := context.Background()

	items, err := s.Siblings(ctx, "/docs/guides")
	require.NoError(t, err)
	items[0].Title = "changed"

	again, err := s.Siblings(ctx, "/docs/guides")
	require.NoError(t, err)
	require.Equal(t, "Install", again[0].Title)

	sidebar := s.Sidebar(ctx)
	sidebar[2].Children[0].Href = "/elsewhere"
	require.Equal(t, "/docs/guides/install", s.Sidebar(ctx)[2].Children[0].Href)
}
