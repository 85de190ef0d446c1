package discogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchBarcode(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/database/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != "tok123" {
			t.Errorf("missing token, got %q", got)
		}
		if got := r.URL.Query().Get("barcode"); got != "5099969944123" {
			t.Errorf("unexpected barcode %q", got)
		}
		fmt.Fprintf(w, `{"results": [{
			"title": "The Beatles - Abbey Road",
			"year": "1969",
			"thumb": "https://img.discogs.example/thumb.jpg",
			"format": ["Vinyl", "LP", "Album"],
			"resource_url": "%s/releases/12345"
		}]}`, srv.URL)
	}))
	defer srv.Close()

	client, err := New("tok123", srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	release, err := client.SearchBarcode(context.Background(), "5099969944123")
	if err != nil {
		t.Fatalf("SearchBarcode failed: %v", err)
	}
	if release.Title != "The Beatles - Abbey Road" || release.Year != "1969" {
		t.Errorf("unexpected release %#v", release)
	}
	if len(release.Formats) != 3 || release.Formats[0] != "Vinyl" {
		t.Errorf("unexpected formats %v", release.Formats)
	}
}

func TestSearchBarcodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	client, err := New("tok123", srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.SearchBarcode(context.Background(), "000"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestTracklist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/12345" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != "tok123" {
			t.Errorf("missing token on detail call, got %q", got)
		}
		w.Write([]byte(`{"tracklist": [
			{"position": "", "title": "Side One", "duration": "", "type_": "heading"},
			{"position": "A1", "title": "Come Together", "duration": "4:19", "type_": "track"},
			{"position": "A2", "title": "Something", "duration": "3:02", "type_": "track"}
		]}`))
	}))
	defer srv.Close()

	client, err := New("tok123", srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tracks, err := client.Tracklist(context.Background(), srv.URL+"/releases/12345")
	if err != nil {
		t.Fatalf("Tracklist failed: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 rows including heading, got %d", len(tracks))
	}
	if !tracks[0].IsHeading() {
		t.Error("first row should be a heading")
	}
	if tracks[1].Position != "A1" || tracks[1].Title != "Come Together" {
		t.Errorf("unexpected track %#v", tracks[1])
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("", "https://api.discogs.example"); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSplitArtistTitle(t *testing.T) {
	cases := []struct {
		in            string
		artist, title string
	}{
		{"The Beatles - Abbey Road", "The Beatles", "Abbey Road"},
		{"Untitled", "", "Untitled"},
		{"A - B - C", "A", "B - C"},
	}
	for _, tc := range cases {
		artist, title := SplitArtistTitle(tc.in)
		if artist != tc.artist || title != tc.title {
			t.Errorf("SplitArtistTitle(%q) = %q/%q, want %q/%q", tc.in, artist, title, tc.artist, tc.title)
		}
	}
}
