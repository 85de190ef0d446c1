package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"shelf/internal/api"
	"shelf/internal/catalog"
	"shelf/internal/labels"
)

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleLocationList(w, r)
	case http.MethodPost:
		s.handleLocationCreate(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleLocationList(w http.ResponseWriter, r *http.Request) {
	locations, err := s.store.ListLocations(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]api.Location, 0, len(locations))
	for _, loc := range locations {
		path, err := s.store.LocationPath(r.Context(), loc.ID)
		if errors.Is(err, catalog.ErrLocationCycle) {
			// Partial path still renders; the broken chain needs operator
			// attention.
			s.log().Warn("location parent chain loops",
				slog.Int64("locationId", loc.ID),
				slog.String("partialPath", path))
		} else if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, api.FromLocation(loc, path))
	}
	s.writeJSON(w, http.StatusOK, map[string][]api.Location{"locations": out})
}

func (s *Server) handleLocationCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		ParentID int64  `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := s.store.CreateLocation(r.Context(), payload.Name, payload.ParentID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, api.FromLocation(created, created.Name))
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/locations/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		s.writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.store.DeleteLocation(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, catalog.ErrLocationInUse):
			s.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "location not found")
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		collections, err := s.store.ListCollections(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]api.Collection, 0, len(collections))
		for _, collection := range collections {
			out = append(out, api.FromCollection(collection))
		}
		s.writeJSON(w, http.StatusOK, map[string][]api.Collection{"collections": out})
	case http.MethodPost:
		var payload struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := s.store.CreateCollection(r.Context(), payload.Name, payload.Description)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.FromCollection(created))
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleLabels computes a label sheet for a selected, ordered set of items.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload struct {
		ItemIDs []int64 `json:"itemIds"`
		StartAt int     `json:"startAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.ItemIDs) == 0 {
		s.writeError(w, http.StatusBadRequest, "itemIds required")
		return
	}

	selected := make([]*catalog.Item, 0, len(payload.ItemIDs))
	for _, id := range payload.ItemIDs {
		item, err := s.store.GetItem(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if item == nil {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		selected = append(selected, item)
	}

	opts := labels.OptionsFromConfig(s.cfg.Labels, payload.StartAt)
	s.writeJSON(w, http.StatusOK, api.FromSheet(labels.Layout(selected, opts)))
}
