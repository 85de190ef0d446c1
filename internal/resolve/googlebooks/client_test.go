package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVolumeByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "isbn:9780261102217" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"volumeInfo": {
				"title": "The Hobbit",
				"authors": ["J.R.R. Tolkien"],
				"description": "A hole in the ground.",
				"publishedDate": "1991-06-15",
				"imageLinks": {"thumbnail": "http://books.google.com/thumb.jpg"}
			}}]
		}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	volume, err := client.VolumeByISBN(context.Background(), "9780261102217")
	if err != nil {
		t.Fatalf("VolumeByISBN failed: %v", err)
	}
	if volume.Title != "The Hobbit" {
		t.Errorf("unexpected title %q", volume.Title)
	}
	if len(volume.Authors) != 1 || volume.Authors[0] != "J.R.R. Tolkien" {
		t.Errorf("unexpected authors %v", volume.Authors)
	}
	if volume.PublishedDate != "1991-06-15" {
		t.Errorf("unexpected published date %q", volume.PublishedDate)
	}
	if volume.Thumbnail != "https://books.google.com/thumb.jpg" {
		t.Errorf("thumbnail not upgraded to https: %q", volume.Thumbnail)
	}
}

func TestVolumeByISBNNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.VolumeByISBN(context.Background(), "0000000000"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestVolumeByISBNServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.VolumeByISBN(context.Background(), "123"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
