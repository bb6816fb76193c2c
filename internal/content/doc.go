// Package content resolves a documentation corpus stored as nested
// directories of metadata-fronted documents.
//
// The corpus is read through an fs.FS. Builder turns a directory into an
// ordered tree of File and Directory entries, Classifier maps a URL path to
// a file, a directory or nothing (canonical scheme first, legacy
// "section-slug" scheme second) and Enumerator lists every address the
// classifier accepts.
//
// Trees are rebuilt per call and never mutated after construction. Missing
// or unreadable content is reported as absence, not as an error.
package content
