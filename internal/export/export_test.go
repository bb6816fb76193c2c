package export

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func newExporter(t *testing.T, fsys fstest.MapFS, out string) *Exporter {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := site.New(fsys, site.Config{Logger: logger})
	r, err := render.New()
	require.NoError(t, err)
	return New(s, render.NewPages(s, r, "Docs"), Options{Output: out, CheckLinks: true, Logger: logger})
}

func TestExport_WritesEveryRoute(t *testing.T) {
	out := t.TempDir()
	e := newExporter(t, fstest.MapFS{
		"guides/install.mdx":   {Data: []byte("---\ntitle: Install\n---\nSee [configure](/docs/guides/configure).\n")},
		"guides/configure.mdx": {Data: []byte("---\ntitle: Configure\n---\nBack to [install](install).\n")},
		"guides/empty":         {Mode: os.ModeDir | 0o755},
	}, out)

	report, err := e.Export(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Broken)

	for _, p := range []string{
		"docs/index.html",
		"docs/guides/index.html",
		"docs/guides/install/index.html",
		"docs/guides/configure/index.html",
		"docs/guides/empty/index.html",
		"docs/guides-install/index.html",
		"docs/guides-configure/index.html",
	} {
		require.FileExists(t, filepath.Join(out, p))
	}
	require.Equal(t, 7, report.Pages)

	body, err := os.ReadFile(filepath.Join(out, "docs/guides/install/index.html"))
	require.NoError(t, err)
	require.Contains(t, string(body), "Install")
}

func TestExport_ReportsBrokenLinks(t *testing.T) {
	out := t.TempDir()
	e := newExporter(t, fstest.MapFS{
		"guides/install.mdx": {Data: []byte("See [gone](/docs/guides/gone) and [site](https://example.com).\n")},
	}, out)

	report, err := e.Export(context.Background())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryExport))
	require.Len(t, report.Broken, 1)
	require.Equal(t, "/docs/guides/gone", report.Broken[0].Target)
	require.FileExists(t, filepath.Join(out, "docs/guides/install/index.html"))
}

func TestExport_RequiresOutput(t *testing.T) {
	e := newExporter(t, fstest.MapFS{}, "")
	_, err := e.Export(context.Background())
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestExport_LegacyRoutesAreRedirectPages(t *testing.T) {
	out := t.TempDir()
	e := newExporter(t, fstest.MapFS{
		"guides/install.mdx": {Data: []byte("---\ntitle: Install\n---\nBody\n")},
	}, out)

	_, err := e.Export(context.Background())
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(out, "docs/guides-install/index.html"))
	require.NoError(t, err)
	require.Contains(t, string(body), `http-equiv="refresh"`)
	require.Contains(t, string(body), "/docs/guides/install")
}

func TestExport_OutputIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	out := t.TempDir()
	e := newExporter(t, fstest.MapFS{
		"guides/install.mdx": {Data: []byte("---\ntitle: Install\n---\nSteps.\n")},
	}, out)

	_, err := e.Export(context.Background())
	require.NoError(t, err)

	dir := filepath.Join(out, "docs", "guides", "install")
	di, err := os.Stat(dir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o005), di.Mode().Perm()&0o005, "directory mode %v", di.Mode().Perm())

	fi, err := os.Stat(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o004), fi.Mode().Perm()&0o004, "file mode %v", fi.Mode().Perm())
}
