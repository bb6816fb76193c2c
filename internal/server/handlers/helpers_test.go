package handlers

import (
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"git.home.luguber.info/inful/docsite/internal/site"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSite(t *testing.T) *site.Site {
	t.Helper()
	fsys := fstest.MapFS{
		"guides/index.mdx":     {Data: []byte("---\ntitle: Guides\n---\n")},
		"guides/install.mdx":   {Data: []byte("---\ntitle: Install\norder: 1\n---\nRun `make`.\n")},
		"guides/configure.mdx": {Data: []byte("---\ntitle: Configure\norder: 2\n---\nEdit.\n")},
	}
	return site.New(fsys, site.Config{Logger: quietLogger()})
}
