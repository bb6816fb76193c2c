package content

import (
	"io/fs"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Kind is the outcome of classifying a path.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	// KindNotFound is the zero value.
	KindNotFound Kind = ""
)

// String returns the kind, or "not_found" for KindNotFound.
func (k Kind) String() string {
	if k == KindNotFound {
		return "not_found"
	}
	return string(k)
}

// Resolution is a classified path.
type Resolution struct {
	Kind Kind
	// Path is the canonical segment list the input resolved to. For a legacy
	// match it is [section, slug]; for NotFound it is nil.
	Path []string
	// Legacy is set when the path matched only through the "section-slug" scheme.
	Legacy bool
}

// Found reports whether the resolution addresses something.
func (r Resolution) Found() bool {
	return r.Kind != KindNotFound
}

// Classifier maps URL path segments to store entries.
type Classifier struct {
	fsys fs.FS
	opts Options
}

// NewClassifier returns a Classifier over fsys.
func NewClassifier(fsys fs.FS, opts Options) *Classifier {
	return &Classifier{fsys: fsys, opts: opts.withDefaults()}
}

// Classify resolves segments. A document named <segments>.<ext> wins over a
// directory at the same path. Only when neither exists, a single segment
// containing a hyphen is split at its first hyphen and retried as the
// document [section, slug].
func (c *Classifier) Classify(segments []string) Resolution {
	res := c.classify(segments)
	c.opts.Recorder.IncClassification(string(res.Kind), res.Legacy)
	c.opts.Logger.Debug("Classified path",
		logfields.Path(strings.Join(segments, "/")),
		logfields.Kind(res.Kind.String()))
	return res
}

func (c *Classifier) classify(segments []string) Resolution {
	if len(segments) == 0 {
		return Resolution{}
	}
	p, ok := storePath(segments)
	if !ok {
		return Resolution{}
	}

	if isFile(c.fsys, p+c.opts.Extension) {
		return Resolution{Kind: KindFile, Path: appendPath(nil, segments...)}
	}
	if isDir(c.fsys, p) {
		return Resolution{Kind: KindDirectory, Path: appendPath(nil, segments...)}
	}
	return c.legacy(segments)
}

func (c *Classifier) legacy(segments []string) Resolution {
	if len(segments) != 1 {
		return Resolution{}
	}
	section, slug, ok := SplitLegacy(segments[0])
	if !ok {
		return Resolution{}
	}
	p, ok := storePath([]string{section, slug})
	if !ok || !isFile(c.fsys, p+c.opts.Extension) {
		return Resolution{}
	}
	return Resolution{Kind: KindFile, Path: []string{section, slug}, Legacy: true}
}

// SplitLegacy splits a flat "section-slug" segment at its first hyphen.
// Both halves must be non-empty.
func SplitLegacy(segment string) (section, slug string, ok bool) {
	section, slug, ok = strings.Cut(segment, "-")
	if !ok || section == "" || slug == "" {
		return "", "", false
	}
	return section, slug, true
}

// LegacySegment joins section and slug into the flat form, reporting false
// when the result would not split back into the same pair.
func LegacySegment(section, slug string) (string, bool) {
	seg := section + "-" + slug
	s, l, ok := SplitLegacy(seg)
	return seg, ok && s == section && l == slug
}
