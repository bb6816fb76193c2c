package content

import "strings"

// EntryInfo holds the fields shared by every node of a content tree.
type EntryInfo struct {
	// Name is the raw on-disk segment name.
	Name string
	// Slug is Name with the document extension removed.
	Slug        string
	Title       string
	Description string
	Order       int
	// FullPath is the slug sequence from the corpus root.
	FullPath []string
}

// Path joins FullPath with slashes.
func (i EntryInfo) Path() string {
	return strings.Join(i.FullPath, "/")
}

// Depth is the number of segments below the corpus root.
func (i EntryInfo) Depth() int {
	return len(i.FullPath)
}

// Entry is a node of a content tree: either *File or *Directory.
//
// The set of variants is closed. Consumers dispatch with Match, which
// takes one handler per variant.
type Entry interface {
	Info() EntryInfo
	isEntry()
}

// File is a document.
type File struct {
	EntryInfo
	// Body is the document text after the metadata block, with code blocks sanitized.
	Body string
	// Params carries metadata keys other than title, description and order.
	Params      map[string]any
	Fingerprint string
}

// Directory is a folder, optionally described by an index document.
type Directory struct {
	EntryInfo
	// Children is ordered and never nil for a built directory.
	Children []Entry
	HasIndex bool
}

func (f *File) Info() EntryInfo      { return f.EntryInfo }
func (*File) isEntry()               {}
func (d *Directory) Info() EntryInfo { return d.EntryInfo }
func (*Directory) isEntry()          {}

// Match calls onFile or onDir depending on the variant of e and returns its result.
func Match[T any](e Entry, onFile func(*File) T, onDir func(*Directory) T) T {
	switch v := e.(type) {
	case *File:
		return onFile(v)
	case *Directory:
		return onDir(v)
	}
	panic("content: unknown entry variant")
}

// Traverse visits entries depth-first in tree order, calling fn for each node
// before its children. Returning false from fn skips the node's children.
func Traverse(entries []Entry, fn func(Entry) bool) {
	for _, e := range entries {
		if !fn(e) {
			continue
		}
		if d, ok := e.(*Directory); ok {
			Traverse(d.Children, fn)
		}
	}
}
