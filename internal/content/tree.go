package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Builder constructs ordered content trees from a store.
type Builder struct {
	fsys fs.FS
	opts Options
}

// NewBuilder returns a Builder reading from fsys.
func NewBuilder(fsys fs.FS, opts Options) *Builder {
	return &Builder{fsys: fsys, opts: opts.withDefaults()}
}

// Options returns the effective options, defaults applied.
func (b *Builder) Options() Options {
	return b.opts
}

// BuildTree returns the ordered children of the directory at segments.
// A missing, unreadable or non-directory target yields an empty slice, as
// does an unreadable subdirectory for its own children.
func (b *Builder) BuildTree(ctx context.Context, segments []string) []Entry {
	entries, err := b.build(ctx, segments, false)
	if err != nil {
		b.opts.Logger.Debug("Content tree unavailable",
			logfields.Path(strings.Join(segments, "/")),
			logfields.Error(err))
		return []Entry{}
	}
	return entries
}

// Walk is BuildTree that reports failures: an invalid or missing target,
// a non-directory target, or any directory that cannot be listed.
func (b *Builder) Walk(ctx context.Context, segments []string) ([]Entry, error) {
	return b.build(ctx, segments, true)
}

func (b *Builder) build(ctx context.Context, segments []string, strict bool) ([]Entry, error) {
	start := time.Now()
	defer func() { b.opts.Recorder.ObserveTreeBuildDuration(time.Since(start)) }()

	dir, ok := storePath(segments)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, segments)
	}
	info, err := fs.Stat(b.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return b.children(ctx, dir, segments, strict)
}

// children lists dir and returns its ordered entries. parent is the slug
// path of dir.
func (b *Builder) children(ctx context.Context, dir string, parent []string, strict bool) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listing, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		b.opts.Logger.Debug("Skipping unreadable directory", logfields.Path(dir), logfields.Error(err))
		return []Entry{}, nil
	}

	fileSlugs := make(map[string]struct{})
	for _, de := range listing {
		if slug, ok := b.documentSlug(de); ok {
			fileSlugs[slug] = struct{}{}
		}
	}

	// Slots keep discovery order; nil slots are omitted entries.
	slots := make([]Entry, len(listing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for i, de := range listing {
		name := de.Name()
		if slug, ok := b.documentSlug(de); ok {
			if f, ok := b.readFile(path.Join(dir, name), name, appendPath(parent, slug)); ok {
				slots[i] = f
			}
			continue
		}
		if !de.IsDir() || isHidden(name) {
			continue
		}
		if _, clash := fileSlugs[name]; clash {
			b.opts.Logger.Warn("Directory shadowed by document with the same slug; omitting directory",
				logfields.Path(path.Join(dir, name)))
			continue
		}
		g.Go(func() error {
			d, err := b.directory(gctx, path.Join(dir, name), name, appendPath(parent, name), strict)
			if err != nil {
				return err
			}
			slots[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, e)
		}
	}
	SortEntries(entries)
	return entries, nil
}

// documentSlug reports whether de is a visible document file and returns its slug.
func (b *Builder) documentSlug(de fs.DirEntry) (string, bool) {
	name := de.Name()
	if !de.Type().IsRegular() || isHidden(name) || name == b.opts.indexFile() {
		return "", false
	}
	slug, ok := strings.CutSuffix(name, b.opts.Extension)
	if !ok || slug == "" {
		return "", false
	}
	return slug, true
}

func (b *Builder) directory(ctx context.Context, dir, name string, fullPath []string, strict bool) (*Directory, error) {
	d := &Directory{
		EntryInfo: EntryInfo{
			Name:     name,
			Slug:     name,
			Title:    TitleFromName(name),
			FullPath: fullPath,
		},
		Children: []Entry{},
	}

	indexPath := path.Join(dir, b.opts.indexFile())
	if raw, err := fs.ReadFile(b.fsys, indexPath); err == nil {
		ex := Extract(raw)
		b.logProblems(indexPath, ex.Problems)
		d.HasIndex = true
		if ex.Meta.HasTitle {
			d.Title = ex.Meta.Title
		}
		d.Description = ex.Meta.Description
		d.Order = ex.Meta.Order
	}

	if len(fullPath) >= b.opts.MaxDepth {
		b.opts.Logger.Warn("Maximum content depth reached; directory children omitted",
			logfields.Path(dir), logfields.Count(len(fullPath)))
		return d, nil
	}

	children, err := b.children(ctx, dir, fullPath, strict)
	if err != nil {
		return nil, err
	}
	d.Children = children
	return d, nil
}

// readFile loads the document at name. Unreadable files report false.
func (b *Builder) readFile(name, base string, fullPath []string) (*File, bool) {
	raw, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		b.opts.Logger.Debug("Skipping unreadable document", logfields.Path(name), logfields.Error(err))
		return nil, false
	}
	return b.newFile(name, base, fullPath, raw), true
}

func (b *Builder) newFile(name, base string, fullPath []string, raw []byte) *File {
	ex := Extract(raw)
	b.logProblems(name, ex.Problems)

	slug := fullPath[len(fullPath)-1]
	title := ex.Meta.Title
	if !ex.Meta.HasTitle {
		title = TitleFromName(slug)
	}
	return &File{
		EntryInfo: EntryInfo{
			Name:        base,
			Slug:        slug,
			Title:       title,
			Description: ex.Meta.Description,
			Order:       ex.Meta.Order,
			FullPath:    fullPath,
		},
		Body:        string(ex.Body),
		Params:      ex.Meta.Params,
		Fingerprint: ex.Fingerprint,
	}
}

// LoadFile reads the document addressed by segments (the last segment is a
// slug, without extension). Missing, unreadable or invalid addresses report false.
func (b *Builder) LoadFile(segments []string) (*File, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	p, ok := storePath(segments)
	if !ok {
		return nil, false
	}
	name := p + b.opts.Extension
	if !isFile(b.fsys, name) {
		return nil, false
	}
	return b.readFile(name, segments[len(segments)-1]+b.opts.Extension, appendPath(nil, segments...))
}

// LoadDirectory builds the directory addressed by segments, its index
// metadata and ordered children included. Missing, invalid or non-directory
// addresses report false.
func (b *Builder) LoadDirectory(ctx context.Context, segments []string) (*Directory, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	p, ok := storePath(segments)
	if !ok || !isDir(b.fsys, p) {
		return nil, false
	}
	name := segments[len(segments)-1]
	d, err := b.directory(ctx, p, name, appendPath(nil, segments...), false)
	if err != nil {
		return nil, false
	}
	return d, true
}

func (b *Builder) logProblems(name string, problems []error) {
	for _, p := range problems {
		b.opts.Logger.Warn("Malformed document metadata; using defaults",
			logfields.Path(name), logfields.Error(p))
	}
}

// appendPath returns a new slice; FullPath values are never shared between entries.
func appendPath(parent []string, segs ...string) []string {
	out := make([]string, 0, len(parent)+len(segs))
	out = append(out, parent...)
	return append(out, segs...)
}
