package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"regexp"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/navigation"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
)

// Navigator is the part of the site the JSON API reads.
type Navigator interface {
	DocsRoot() string
	GetSiblingNavigation(ctx context.Context, pathname string) ([]navigation.Item, error)
	GetTopLevelSections(ctx context.Context) []navigation.Item
	ListAllRoutes(ctx context.Context) [][]string
}

// APIHandlers serves the navigation JSON API.
type APIHandlers struct {
	nav          Navigator
	pathname     *regexp.Regexp
	cacheControl string
	errorAdapter *errors.HTTPErrorAdapter
	logger       *slog.Logger
}

// NewAPIHandlers creates the API handlers. cacheControl is sent with
// successful sibling listings.
func NewAPIHandlers(nav Navigator, cacheControl string, logger *slog.Logger) *APIHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandlers{
		nav:          nav,
		pathname:     regexp.MustCompile(`^/` + regexp.QuoteMeta(nav.DocsRoot()) + `/[a-z0-9/\-]+$`),
		cacheControl: cacheControl,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
		logger:       logger,
	}
}

// HandleSiblingFiles lists the section entries beside ?pathname=.
func (h *APIHandlers) HandleSiblingFiles(w http.ResponseWriter, r *http.Request) {
	pathname := r.URL.Query().Get("pathname")
	if pathname == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("Pathname is required").Build())
		return
	}
	if !h.pathname.MatchString(pathname) {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("Invalid pathname format").Build())
		return
	}

	files, err := h.nav.GetSiblingNavigation(r.Context(), pathname)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "Failed to fetch sibling files").
				WithContext("pathname", pathname).
				Build())
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	if err := writeJSON(w, http.StatusOK, responses.SiblingFilesResponse{Files: files}); err != nil {
		h.logger.Error("Failed to write sibling files", logfields.Path(pathname), logfields.Error(err))
	}
}

// HandleSections lists the top-level sections.
func (h *APIHandlers) HandleSections(w http.ResponseWriter, r *http.Request) {
	resp := responses.SectionsResponse{Sections: h.nav.GetTopLevelSections(r.Context())}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write sections response").Build())
	}
}

// HandleRoutes lists every page address.
func (h *APIHandlers) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.nav.ListAllRoutes(r.Context())
	resp := responses.RoutesResponse{Count: len(routes), Routes: make([]string, 0, len(routes))}
	for _, route := range routes {
		resp.Routes = append(resp.Routes, "/"+path.Join(append([]string{h.nav.DocsRoot()}, route...)...))
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write routes response").Build())
	}
}
