package content

import (
	"io"
	"io/fs"
	"log/slog"
	"testing/fstest"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func doc(frontmatter, body string) *fstest.MapFile {
	if frontmatter == "" {
		return &fstest.MapFile{Data: []byte(body)}
	}
	return &fstest.MapFile{Data: []byte("---\n" + frontmatter + "\n---\n" + body)}
}

// sampleStore is a small corpus shared by the tree, classifier and
// enumerator tests.
func sampleStore() fstest.MapFS {
	return fstest.MapFS{
		"guides/index.mdx":           doc("title: User Guides\ndescription: How to\norder: 1", ""),
		"guides/install.mdx":         doc("title: Install\norder: 1", "# Install\n"),
		"guides/configure.mdx":       doc("title: Configure\norder: 2", "# Configure\n"),
		"guides/advanced/index.mdx":  doc("order: 3", ""),
		"guides/advanced/tuning.mdx": doc("title: Tuning", "Tune it.\n"),
		"guides/getting-started.mdx": doc("", "No metadata here.\n"),
		"guides/.draft.mdx":          doc("title: Draft", ""),
		"guides/notes.txt":           {Data: []byte("not a document")},
		"reference/api.mdx":          doc("title: API", "```\n<T>{}\n```\n"),
		"reference/api/v1.mdx":       doc("title: Shadowed", ""),
		"reference/empty":            {Mode: fs.ModeDir | 0o755},
		"multi-word/page.mdx":        doc("title: Page", ""),
		"top.mdx":                    doc("title: Top", ""),
	}
}
