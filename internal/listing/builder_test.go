package listing_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"shelf/internal/catalog"
	"shelf/internal/listing"
	"shelf/internal/session"
	"shelf/internal/testsupport"
)

type fixture struct {
	store    *catalog.Store
	sessions *session.Store
	builder  *listing.Builder
	user     *catalog.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	sessions := session.NewStore()
	return &fixture{
		store:    store,
		sessions: sessions,
		builder:  listing.NewBuilder(store, sessions, 20, nil),
		user:     testsupport.MustUser(t, store, "admin"),
	}
}

func (f *fixture) request(rawQuery string) listing.Request {
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		panic(err)
	}
	return listing.Request{Params: params, SessionID: "sess-1", UserID: f.user.ID}
}

func (f *fixture) handle(t *testing.T, rawQuery string) *listing.Outcome {
	t.Helper()
	outcome, err := f.builder.Handle(context.Background(), f.request(rawQuery))
	if err != nil {
		t.Fatalf("Handle(%q) failed: %v", rawQuery, err)
	}
	return outcome
}

func TestResetClearsSessionAndRedirectsBare(t *testing.T) {
	f := newFixture(t)
	f.handle(t, "q=tolkien&category=Book")

	outcome := f.handle(t, "reset=1")
	if outcome.Redirect != "/items" {
		t.Fatalf("expected bare redirect, got %q", outcome.Redirect)
	}
	if _, ok := f.sessions.Get("sess-1"); ok {
		t.Fatal("expected session state to be cleared")
	}
}

func TestFilterRequestReplacesSessionState(t *testing.T) {
	f := newFixture(t)
	f.handle(t, "q=tolkien&category=Book")
	f.handle(t, "category=CD")

	state, ok := f.sessions.Get("sess-1")
	if !ok {
		t.Fatal("expected remembered state")
	}
	if state.Query != "" {
		t.Fatalf("old query should not be merged into new state, got %q", state.Query)
	}
	if state.Category != "CD" {
		t.Fatalf("expected category CD, got %q", state.Category)
	}
}

func TestBareRequestRedirectsIntoRememberedState(t *testing.T) {
	f := newFixture(t)
	f.handle(t, "sort_field=year&sort_order=asc")

	outcome := f.handle(t, "")
	if outcome.Redirect == "" {
		t.Fatal("expected redirect into remembered state")
	}
	restored, err := url.ParseQuery(strings.TrimPrefix(outcome.Redirect, "/items?"))
	if err != nil {
		t.Fatalf("redirect query unparseable: %v", err)
	}
	if restored.Get("sort_field") != "year" || restored.Get("sort_order") != "asc" {
		t.Fatalf("expected year/asc restored, got %q", outcome.Redirect)
	}
}

func TestBareRequestFallsBackToSavedPreferenceThenDefault(t *testing.T) {
	f := newFixture(t)

	// Nothing remembered, nothing saved: added descending.
	outcome := f.handle(t, "")
	if outcome.Page == nil {
		t.Fatalf("expected a page, got redirect %q", outcome.Redirect)
	}
	if outcome.Page.Filters.SortField != catalog.SortAdded || outcome.Page.Filters.SortOrder != catalog.OrderDesc {
		t.Fatalf("expected added/desc defaults, got %s/%s", outcome.Page.Filters.SortField, outcome.Page.Filters.SortOrder)
	}
	if outcome.Page.FilterActive {
		t.Fatal("defaults must not count as an active filter")
	}

	// An explicit sort persists the durable preference.
	f.handle(t, "sort_field=year&sort_order=asc")
	f.sessions.Clear("sess-1")

	outcome = f.handle(t, "")
	if outcome.Page == nil {
		t.Fatalf("expected a page, got redirect %q", outcome.Redirect)
	}
	if outcome.Page.Filters.SortField != catalog.SortYear || outcome.Page.Filters.SortOrder != catalog.OrderAsc {
		t.Fatalf("expected saved year/asc preference, got %s/%s", outcome.Page.Filters.SortField, outcome.Page.Filters.SortOrder)
	}
}

func TestIdempotentFilterRequests(t *testing.T) {
	f := newFixture(t)
	testsupport.MustCreateItem(t, f.store, &catalog.Item{Title: "The Hobbit", Author: "J.R.R. Tolkien", UserID: f.user.ID})
	testsupport.MustCreateItem(t, f.store, &catalog.Item{Title: "Dune", Author: "Frank Herbert", UserID: f.user.ID})

	first := f.handle(t, "q=tolkien")
	second := f.handle(t, "q=tolkien")

	stateAfterFirst, _ := f.sessions.Get("sess-1")
	if stateAfterFirst.Query != "tolkien" {
		t.Fatalf("unexpected state %#v", stateAfterFirst)
	}
	if len(first.Page.Items) != 1 || len(second.Page.Items) != 1 {
		t.Fatalf("expected one match both times, got %d then %d", len(first.Page.Items), len(second.Page.Items))
	}
	if first.Page.Items[0].ID != second.Page.Items[0].ID {
		t.Fatal("repeated request returned a different page")
	}
}

func TestLimitAllDisablesPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		testsupport.MustCreateItem(t, f.store, &catalog.Item{Title: fmt.Sprintf("Item %d", i), UserID: f.user.ID})
	}

	outcome := f.handle(t, "limit=all")
	if outcome.Page.Pagination != nil {
		t.Fatalf("expected nil pagination for limit=all, got %#v", outcome.Page.Pagination)
	}
	if len(outcome.Page.Items) != 25 {
		t.Fatalf("expected all 25 items, got %d", len(outcome.Page.Items))
	}
}

func TestPaginationAndOutOfRangePage(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		testsupport.MustCreateItem(t, f.store, &catalog.Item{Title: fmt.Sprintf("Item %d", i), UserID: f.user.ID})
	}

	outcome := f.handle(t, "limit=2&page=2")
	pg := outcome.Page.Pagination
	if pg == nil || pg.Page != 2 || pg.PerPage != 2 || pg.Total != 5 {
		t.Fatalf("unexpected pagination %#v", pg)
	}
	if len(outcome.Page.Items) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(outcome.Page.Items))
	}

	beyond := f.handle(t, "limit=2&page=99")
	if len(beyond.Page.Items) != 0 {
		t.Fatalf("out-of-range page must be empty, got %d items", len(beyond.Page.Items))
	}
}

func TestMalformedInputsFailSoft(t *testing.T) {
	f := newFixture(t)
	testsupport.MustCreateItem(t, f.store, &catalog.Item{Title: "Solo", UserID: f.user.ID})

	outcome := f.handle(t, "limit=banana&page=-3&location=xyz&sort_field=bogus&sort_order=sideways")
	if outcome.Page == nil {
		t.Fatalf("expected a page, got redirect %q", outcome.Redirect)
	}
	pg := outcome.Page.Pagination
	if pg == nil || pg.Page != 1 || pg.PerPage != 20 {
		t.Fatalf("expected defaults for malformed paging, got %#v", pg)
	}
	if outcome.Page.Filters.SortField != catalog.SortAdded || outcome.Page.Filters.SortOrder != catalog.OrderDesc {
		t.Fatalf("expected default sort for bogus values, got %s/%s", outcome.Page.Filters.SortField, outcome.Page.Filters.SortOrder)
	}
	if len(outcome.Page.Items) != 1 {
		t.Fatalf("bogus location must not filter anything out, got %d items", len(outcome.Page.Items))
	}
}

func TestFilterActiveFlag(t *testing.T) {
	f := newFixture(t)

	plain := f.handle(t, "")
	if plain.Page.FilterActive {
		t.Fatal("bare defaults should not be active")
	}

	filtered := f.handle(t, "lent=yes")
	if !filtered.Page.FilterActive {
		t.Fatal("lending filter should mark the view active")
	}
}
