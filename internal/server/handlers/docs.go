package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
)

// PageRenderer renders site addresses to HTML.
type PageRenderer interface {
	Index(ctx context.Context) (render.Result, error)
	Path(ctx context.Context, segments []string) (render.Result, error)
}

// DocsHandlers serves rendered documentation pages.
type DocsHandlers struct {
	pages        PageRenderer
	errorAdapter *errors.HTTPErrorAdapter
	logger       *slog.Logger
}

// NewDocsHandlers creates the page handlers.
func NewDocsHandlers(pages PageRenderer, logger *slog.Logger) *DocsHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocsHandlers{pages: pages, errorAdapter: errors.NewHTTPErrorAdapter(logger), logger: logger}
}

// HandleIndex renders the docs root.
func (h *DocsHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	res, err := h.pages.Index(r.Context())
	h.write(w, r, res, err)
}

// HandlePage renders the page addressed by the {path...} wildcard.
func (h *DocsHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.PathValue("path"))
	if len(segments) == 0 {
		h.HandleIndex(w, r)
		return
	}
	res, err := h.pages.Path(r.Context(), segments)
	h.write(w, r, res, err)
}

func (h *DocsHandlers) write(w http.ResponseWriter, r *http.Request, res render.Result, err error) {
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryRender, "failed to render page").
				WithContext("path", r.URL.Path).
				Build())
		return
	}

	header := w.Header()
	if res.Location != "" {
		header.Set("Location", res.Location)
	}
	if res.ETag != "" {
		header.Set("ETag", res.ETag)
		header.Set("Cache-Control", "no-cache")
		if etagMatches(r.Header.Get("If-None-Match"), res.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	header.Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.Status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(res.Body); err != nil {
		h.logger.Debug("Failed to write page", logfields.Path(r.URL.Path), logfields.Error(err))
	}
}
