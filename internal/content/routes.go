package content

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Enumerator lists every address the Classifier resolves, for ahead-of-time
// generation.
type Enumerator struct {
	builder *Builder
}

// NewEnumerator returns an Enumerator walking trees with b.
func NewEnumerator(b *Builder) *Enumerator {
	return &Enumerator{builder: b}
}

// ListAllRoutes returns, for each section in order: the section path, every
// node below it depth-first, and the legacy "section-slug" form of each
// document directly inside the section. Legacy forms are only listed when
// they split back into the same section and slug. Duplicates are dropped.
// Any traversal failure yields an empty list.
func (e *Enumerator) ListAllRoutes(ctx context.Context) [][]string {
	opts := e.builder.opts
	root, err := e.builder.Walk(ctx, nil)
	if err != nil {
		opts.Logger.Warn("Route enumeration failed; returning no routes", logfields.Error(err))
		return [][]string{}
	}

	routes := [][]string{}
	seen := make(map[string]struct{})
	add := func(p []string) {
		key := strings.Join(p, "/")
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		routes = append(routes, p)
	}

	for _, top := range root {
		section, ok := top.(*Directory)
		if !ok {
			continue
		}
		add(section.FullPath)
		Traverse(section.Children, func(n Entry) bool {
			add(n.Info().FullPath)
			return true
		})
		for _, child := range section.Children {
			f, ok := child.(*File)
			if !ok {
				continue
			}
			if seg, ok := LegacySegment(section.Slug, f.Slug); ok {
				add([]string{seg})
			}
		}
	}

	opts.Recorder.SetRouteCount(len(routes))
	return routes
}
