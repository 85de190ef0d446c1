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
	"shelf/internal/listing"
	"shelf/internal/session"
)

// itemPayload is the create/update request body.
type itemPayload struct {
	Barcode       string      `json:"barcode"`
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Author        string      `json:"author"`
	ReleaseYear   int         `json:"releaseYear"`
	Description   string      `json:"description"`
	ImageFilename string      `json:"imageFilename"`
	LocationID    int64       `json:"locationId"`
	CollectionID  int64       `json:"collectionId"`
	VolumeNumber  int         `json:"volumeNumber"`
	Tracks        []api.Track `json:"tracks"`
}

func (p *itemPayload) apply(item *catalog.Item) {
	item.Barcode = strings.TrimSpace(p.Barcode)
	item.Title = strings.TrimSpace(p.Title)
	item.Category = strings.TrimSpace(p.Category)
	item.Author = strings.TrimSpace(p.Author)
	item.ReleaseYear = p.ReleaseYear
	item.Description = p.Description
	item.ImageFilename = strings.TrimSpace(p.ImageFilename)
	item.LocationID = p.LocationID
	item.CollectionID = p.CollectionID
	item.VolumeNumber = p.VolumeNumber
	item.Tracks = item.Tracks[:0]
	for _, track := range p.Tracks {
		item.Tracks = append(item.Tracks, catalog.Track{
			Position: track.Position,
			Title:    track.Title,
			Duration: track.Duration,
		})
	}
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleItemList(w, r)
	case http.MethodPost:
		s.handleItemCreate(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	user, err := s.requestUser(r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sessionID := session.EnsureCookie(w, r)

	outcome, err := s.builder.Handle(r.Context(), listing.Request{
		Params:    r.URL.Query(),
		SessionID: sessionID,
		UserID:    user.ID,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if outcome.Redirect != "" {
		http.Redirect(w, r, apiRedirect(outcome.Redirect), http.StatusFound)
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromPage(outcome.Page))
}

// apiRedirect rebases a list-view redirect onto the API route.
func apiRedirect(target string) string {
	return "/api" + target
}

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	user, err := s.requestUser(r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := &catalog.Item{UserID: user.ID}
	payload.apply(item)
	created, err := s.store.CreateItem(r.Context(), item)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, api.FromItem(created))
}

// handleItem dispatches /api/items/{id} and its lend/return subactions.
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/items/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		s.writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			s.handleItemGet(w, r, id)
		case http.MethodPut:
			s.handleItemUpdate(w, r, id)
		case http.MethodDelete:
			s.handleItemDelete(w, r, id)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "lend":
		s.handleItemLend(w, r, id)
	case "return":
		s.handleItemReturn(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleItemGet(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if item == nil {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromItem(item))
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	existing, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.apply(existing)
	if err := s.store.UpdateItem(r.Context(), existing); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.ReplaceTracks(r.Context(), id, existing.Tracks); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	updated, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromItem(updated))
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := s.store.DeleteItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleItemLend(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload struct {
		Borrower string `json:"borrower"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := s.store.Lend(r.Context(), id, payload.Borrower)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.notifier.NotifyLent(r.Context(), item.Title, item.LentTo); err != nil {
		s.log().Warn("lend notification failed", slog.String("error", err.Error()))
	}
	s.writeJSON(w, http.StatusOK, api.FromItem(item))
}

func (s *Server) handleItemReturn(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	item, err := s.store.Return(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.notifier.NotifyReturned(r.Context(), item.Title); err != nil {
		s.log().Warn("return notification failed", slog.String("error", err.Error()))
	}
	s.writeJSON(w, http.StatusOK, api.FromItem(item))
}
