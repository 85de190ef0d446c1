package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEditionByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("bibkeys"); got != "ISBN:9780261102217" {
			t.Errorf("unexpected bibkeys %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ISBN:9780261102217": {
			"title": "The Hobbit",
			"publish_date": "1991",
			"authors": [{"name": "J.R.R. Tolkien"}, {"name": "Alan Lee"}],
			"cover": {"large": "https://covers.openlibrary.org/b/id/1-L.jpg", "medium": "https://covers.openlibrary.org/b/id/1-M.jpg"}
		}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	edition, err := client.EditionByISBN(context.Background(), "9780261102217")
	if err != nil {
		t.Fatalf("EditionByISBN failed: %v", err)
	}
	if edition.Title != "The Hobbit" {
		t.Errorf("unexpected title %q", edition.Title)
	}
	if edition.Author != "J.R.R. Tolkien, Alan Lee" {
		t.Errorf("unexpected author %q", edition.Author)
	}
	if edition.CoverURL != "https://covers.openlibrary.org/b/id/1-L.jpg" {
		t.Errorf("expected large cover, got %q", edition.CoverURL)
	}
}

func TestEditionByISBNFallsBackToMediumCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ISBN:123": {"title": "X", "cover": {"medium": "https://covers.openlibrary.org/b/id/2-M.jpg"}}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	edition, err := client.EditionByISBN(context.Background(), "123")
	if err != nil {
		t.Fatalf("EditionByISBN failed: %v", err)
	}
	if edition.CoverURL != "https://covers.openlibrary.org/b/id/2-M.jpg" {
		t.Errorf("expected medium fallback, got %q", edition.CoverURL)
	}
}

func TestEditionByISBNEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.EditionByISBN(context.Background(), "000"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}
