package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Default layout values.
const (
	DefaultExtension   = ".mdx"
	DefaultIndexName   = "index"
	DefaultMaxDepth    = 16
	DefaultConcurrency = 8
)

// Options configures how a store is interpreted.
type Options struct {
	// Extension identifies document files, including the leading dot.
	Extension string
	// IndexName is the base name of the document describing its directory.
	IndexName string
	// MaxDepth bounds recursion; deeper directories are emitted without children.
	MaxDepth int
	// Concurrency bounds parallel subdirectory builds per directory.
	Concurrency int

	Logger   *slog.Logger
	Recorder metrics.Recorder
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.IndexName == "" {
		o.IndexName = DefaultIndexName
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	o.Recorder = metrics.OrNoop(o.Recorder)
	return o
}

func (o Options) indexFile() string {
	return o.IndexName + o.Extension
}

// DirStore opens the content directory at root as a read-only store.
// Symbolic links inside it are not followed by tree enumeration.
func DirStore(root string) fs.FS {
	return os.DirFS(root)
}

// validSegment reports whether s can name a single visible store entry.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

// storePath joins segments into an fs.FS path, or reports false when any
// segment is unusable. The empty list is the store root ".".
func storePath(segments []string) (string, bool) {
	if len(segments) == 0 {
		return ".", true
	}
	for _, s := range segments {
		if !validSegment(s) {
			return "", false
		}
	}
	p := path.Join(segments...)
	return p, fs.ValidPath(p)
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
