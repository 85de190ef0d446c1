package server

import (
	"net/http"
	"strings"

	"shelf/internal/resolve"
)

func (s *Server) handleBarcodeLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "code parameter required")
		return
	}
	if s.resolver == nil {
		s.writeJSON(w, http.StatusOK, &resolve.Result{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.resolver.ResolveBarcode(r.Context(), code))
}

func (s *Server) handleTextSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	artist := strings.TrimSpace(r.URL.Query().Get("artist"))
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if artist == "" && title == "" {
		s.writeError(w, http.StatusBadRequest, "artist or title parameter required")
		return
	}
	if s.resolver == nil {
		s.writeJSON(w, http.StatusOK, resolve.TextSearchResult{
			Release:   resolve.TextMatch{Message: "lookup not configured"},
			Streaming: resolve.TextMatch{Message: "lookup not configured"},
		})
		return
	}
	s.writeJSON(w, http.StatusOK, s.resolver.SearchText(r.Context(), artist, title))
}
