package deezer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchAlbum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/album" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "The Beatles Abbey Road" {
			t.Errorf("unexpected query %q", got)
		}
		w.Write([]byte(`{"data": [{
			"title": "Abbey Road",
			"cover_big": "https://cdn.deezer.example/abbey.jpg",
			"artist": {"name": "The Beatles"}
		}]}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	album, err := client.SearchAlbum(context.Background(), "The Beatles", "Abbey Road")
	if err != nil {
		t.Fatalf("SearchAlbum failed: %v", err)
	}
	if album.Title != "Abbey Road" || album.Artist != "The Beatles" {
		t.Errorf("unexpected album %#v", album)
	}
	if album.CoverURL != "https://cdn.deezer.example/abbey.jpg" {
		t.Errorf("unexpected cover %q", album.CoverURL)
	}
}

func TestSearchAlbumEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.SearchAlbum(context.Background(), "X", "Y"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}
