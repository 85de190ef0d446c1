package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStoreReplaceNotMerge(t *testing.T) {
	store := NewStore()
	store.Set("abc", FilterState{Query: "tolkien", Category: "book"})
	store.Set("abc", FilterState{Category: "cd"})

	state, ok := store.Get("abc")
	if !ok {
		t.Fatal("expected state for session")
	}
	if state.Query != "" {
		t.Fatalf("query should have been forgotten, got %q", state.Query)
	}
	if state.Category != "cd" {
		t.Fatalf("expected category cd, got %q", state.Category)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Set("abc", FilterState{Query: "x"})
	store.Clear("abc")
	if _, ok := store.Get("abc"); ok {
		t.Fatal("expected cleared session to be gone")
	}
	// Clearing an unknown session is a no-op.
	store.Clear("missing")
}

func TestEnsureCookieMintsAndReuses(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)

	id := EnsureCookie(rec, req)
	if id == "" {
		t.Fatal("expected a minted session id")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != id {
		t.Fatalf("expected session cookie to be set, got %#v", cookies)
	}

	second := httptest.NewRequest(http.MethodGet, "/items", nil)
	second.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	rec2 := httptest.NewRecorder()
	if got := EnsureCookie(rec2, second); got != id {
		t.Fatalf("expected existing id %q to be reused, got %q", id, got)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatal("no new cookie should be set when one already exists")
	}
}
