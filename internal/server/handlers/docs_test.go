package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/render"
)

func newDocsHandlers(t *testing.T) *DocsHandlers {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return NewDocsHandlers(render.NewPages(newSite(t), r, "Handbook"), quietLogger())
}

func servePage(h *DocsHandlers, method, target string, header http.Header) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /docs", h.HandleIndex)
	mux.HandleFunc("GET /docs/{path...}", h.HandlePage)
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHandlePage_Document(t *testing.T) {
	h := newDocsHandlers(t)

	rr := servePage(h, http.MethodGet, "/docs/guides/install", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rr.Body.String(), "<code>make</code>")

	rr = servePage(h, http.MethodGet, "/docs/guides/install", http.Header{"If-None-Match": {`"other", ` + etag}})
	require.Equal(t, http.StatusNotModified, rr.Code)
	require.Empty(t, rr.Body.String())

	rr = servePage(h, http.MethodHead, "/docs/guides/install", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Body.String())
}

func TestHandlePage_DirectoryIndexAndMissing(t *testing.T) {
	h := newDocsHandlers(t)

	rr := servePage(h, http.MethodGet, "/docs/guides", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Header().Get("ETag"))
	require.Contains(t, rr.Body.String(), `href="/docs/guides/configure"`)

	rr = servePage(h, http.MethodGet, "/docs", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = servePage(h, http.MethodGet, "/docs/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = servePage(h, http.MethodGet, "/docs/guides/nope", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestHandlePage_LegacyRedirect(t *testing.T) {
	h := newDocsHandlers(t)

	rr := servePage(h, http.MethodGet, "/docs/guides-configure", nil)
	require.Equal(t, http.StatusPermanentRedirect, rr.Code)
	require.Equal(t, "/docs/guides/configure", rr.Header().Get("Location"))
}

type brokenPages struct{}

func (brokenPages) Index(context.Context) (render.Result, error) {
	return render.Result{}, errors.New("template exploded")
}

func (brokenPages) Path(context.Context, []string) (render.Result, error) {
	return render.Result{}, errors.New("template exploded")
}

func TestHandlePage_RenderFailure(t *testing.T) {
	h := NewDocsHandlers(brokenPages{}, quietLogger())

	rr := servePage(h, http.MethodGet, "/docs/guides/install", nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "exploded")
}

func TestEtagMatches(t *testing.T) {
	require.True(t, etagMatches(`"a"`, `"a"`))
	require.True(t, etagMatches(`W/"a"`, `"a"`))
	require.True(t, etagMatches(`*`, `"a"`))
	require.False(t, etagMatches(`"b"`, `"a"`))
	require.False(t, etagMatches(``, `"a"`))
}
