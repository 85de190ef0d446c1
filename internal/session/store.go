package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName identifies the browsing session on list requests.
const CookieName = "shelf_session"

// FilterState captures the list-view parameters remembered for a browsing
// session. Values are stored as the raw request strings so they round-trip
// unchanged through a redirect.
type FilterState struct {
	Query     string
	Category  string
	Location  string
	Lent      string
	SortField string
	SortOrder string
	Limit     string
}

// IsZero reports whether no filter parameter has been remembered.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Store holds per-session filter state in memory. State lives for the
// lifetime of the process; a restart simply forgets the remembered filters,
// which the list view treats the same as a fresh session.
type Store struct {
	mu     sync.Mutex
	states map[string]FilterState
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{states: make(map[string]FilterState)}
}

// Get returns the remembered state for a session, if any.
func (s *Store) Get(id string) (FilterState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	return state, ok
}

// Set replaces the remembered state for a session. Replacement is whole,
// never a merge: omitted filters are forgotten along with the rest.
func (s *Store) Set(id string, state FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// Clear forgets the remembered state for a session.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}

// EnsureCookie returns the request's session identifier, minting a fresh one
// and setting the cookie when the request carries none.
func EnsureCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return id
}
