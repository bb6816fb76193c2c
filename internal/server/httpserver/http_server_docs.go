package httpserver

import "net/http"

func (s *Server) docsMux() *http.ServeMux {
	mux := http.NewServeMux()
	root := "/" + s.docsRoot

	mux.Handle("GET /{$}", http.RedirectHandler(root, http.StatusFound))
	mux.HandleFunc("GET "+root, s.docsHandlers.HandleIndex)
	mux.HandleFunc("GET "+root+"/{path...}", s.docsHandlers.HandlePage)

	mux.HandleFunc("GET /api/sibling-files", s.apiHandlers.HandleSiblingFiles)
	mux.HandleFunc("GET /api/sections", s.apiHandlers.HandleSections)
	mux.HandleFunc("GET /api/routes", s.apiHandlers.HandleRoutes)
	return mux
}
