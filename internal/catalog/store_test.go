package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shelf/internal/catalog"
	"shelf/internal/testsupport"
)

func TestOpenAppliesMigrationsAndSeed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	locations, err := store.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations failed: %v", err)
	}
	if len(locations) != 1 || locations[0].Name != "Unsorted" {
		t.Fatalf("expected seeded Unsorted location, got %#v", locations)
	}
}

func TestCreateItemAssignsInventoryNumber(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	item := testsupport.MustCreateItem(t, store, &catalog.Item{
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		UserID: user.ID,
	})
	if item.InventoryNumber == "" {
		t.Fatal("expected generated inventory number")
	}
	if item.Category != catalog.CategoryOther {
		t.Fatalf("expected default category, got %q", item.Category)
	}
	if item.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be stamped")
	}
}

func TestCreateItemPersistsTracks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	item := testsupport.MustCreateItem(t, store, &catalog.Item{
		Title:    "Abbey Road",
		Category: catalog.CategoryVinyl,
		UserID:   user.ID,
		Tracks: []catalog.Track{
			{Position: 1, Title: "Come Together", Duration: "4:19"},
			{Position: 2, Title: "Something", Duration: "3:02"},
		},
	})
	if len(item.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(item.Tracks))
	}
	if item.Tracks[0].Title != "Come Together" {
		t.Fatalf("unexpected track order: %#v", item.Tracks)
	}
}

func TestLendingInvariant(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	item := testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Blade Runner", UserID: user.ID})

	lent, err := store.Lend(ctx, item.ID, "Rick")
	if err != nil {
		t.Fatalf("Lend failed: %v", err)
	}
	if lent.LentTo != "Rick" {
		t.Fatalf("expected borrower Rick, got %q", lent.LentTo)
	}
	if lent.LentAt == nil {
		t.Fatal("lent_at must be set when lent_to is set")
	}

	returned, err := store.Return(ctx, item.ID)
	if err != nil {
		t.Fatalf("Return failed: %v", err)
	}
	if returned.LentTo != "" || returned.LentAt != nil {
		t.Fatalf("expected cleared lending state, got %q %v", returned.LentTo, returned.LentAt)
	}

	if _, err := store.Lend(ctx, item.ID, "  "); err == nil {
		t.Fatal("expected error for blank borrower")
	}
}

func TestSearchFreeTextMatchesAuthorAndTracks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	testsupport.MustCreateItem(t, store, &catalog.Item{
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		UserID: user.ID,
	})
	testsupport.MustCreateItem(t, store, &catalog.Item{
		Title:  "Neuromancer",
		Author: "William Gibson",
		UserID: user.ID,
	})
	testsupport.MustCreateItem(t, store, &catalog.Item{
		Title:  "Mixed Tape",
		UserID: user.ID,
		Tracks: []catalog.Track{{Position: 1, Title: "Tolkien Song"}},
	})

	items, total, err := store.SearchItems(ctx, catalog.SearchQuery{Text: "Tolkien"})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 matches (author + track), got total=%d len=%d", total, len(items))
	}
}

func TestSearchLocationIsExactNotSubtree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	shelfLoc, err := store.CreateLocation(ctx, "Shelf", 0)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}
	box, err := store.CreateLocation(ctx, "Box", shelfLoc.ID)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}

	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "On Shelf", LocationID: shelfLoc.ID, UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "In Box", LocationID: box.ID, UserID: user.ID})

	items, total, err := store.SearchItems(ctx, catalog.SearchQuery{LocationID: shelfLoc.ID})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if total != 1 || items[0].Title != "On Shelf" {
		t.Fatalf("expected only the directly stored item, got total=%d %#v", total, items)
	}
}

func TestSearchLentFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	out := testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Lent Out", UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "At Home", UserID: user.ID})
	if _, err := store.Lend(ctx, out.ID, "Sam"); err != nil {
		t.Fatalf("Lend failed: %v", err)
	}

	lent, _, err := store.SearchItems(ctx, catalog.SearchQuery{Lent: catalog.LentOnly})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if len(lent) != 1 || lent[0].Title != "Lent Out" {
		t.Fatalf("unexpected lent filter result: %#v", lent)
	}

	available, _, err := store.SearchItems(ctx, catalog.SearchQuery{Lent: catalog.LentExcluded})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if len(available) != 1 || available[0].Title != "At Home" {
		t.Fatalf("unexpected available filter result: %#v", available)
	}
}

func TestSortCascadeAuthorDescendingKeepsTitleAscending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Two Towers", Author: "Tolkien", ReleaseYear: 1954, UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Fellowship", Author: "Tolkien", ReleaseYear: 1954, UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Dune", Author: "Herbert", ReleaseYear: 1965, UserID: user.ID})

	items, _, err := store.SearchItems(ctx, catalog.SearchQuery{
		SortField: catalog.SortAuthor,
		SortOrder: catalog.OrderDesc,
	})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Title)
	}
	want := []string{"Fellowship", "Two Towers", "Dune"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSortCascadeYearAscending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "B Side", Author: "Zeta", ReleaseYear: 1970, UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "A Side", Author: "Alpha", ReleaseYear: 1970, UserID: user.ID})
	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Old One", Author: "Alpha", ReleaseYear: 1960, UserID: user.ID})

	items, _, err := store.SearchItems(ctx, catalog.SearchQuery{
		SortField: catalog.SortYear,
		SortOrder: catalog.OrderAsc,
	})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Title)
	}
	want := []string{"Old One", "A Side", "B Side"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		testsupport.MustCreateItem(t, store, &catalog.Item{Title: fmt.Sprintf("Item %d", i), UserID: user.ID})
	}

	page, total, err := store.SearchItems(ctx, catalog.SearchQuery{
		SortField: catalog.SortAdded,
		SortOrder: catalog.OrderAsc,
		Limit:     2,
		Offset:    2,
	})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page) != 2 || page[0].Title != "Item 2" {
		t.Fatalf("unexpected page contents: %#v", page)
	}

	empty, total, err := store.SearchItems(ctx, catalog.SearchQuery{Limit: 2, Offset: 100})
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if total != 5 || len(empty) != 0 {
		t.Fatalf("expected empty out-of-range page, got %d items", len(empty))
	}
}

func TestLocationPathAndCycleGuard(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	attic, err := store.CreateLocation(ctx, "Attic", 0)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}
	box, err := store.CreateLocation(ctx, "Box 3", attic.ID)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}

	path, err := store.LocationPath(ctx, box.ID)
	if err != nil {
		t.Fatalf("LocationPath failed: %v", err)
	}
	if path != "Attic / Box 3" {
		t.Fatalf("unexpected path %q", path)
	}

	// Break the tree: point the root at its own descendant.
	if err := store.SetLocationParent(ctx, attic.ID, box.ID); err != nil {
		t.Fatalf("SetLocationParent failed: %v", err)
	}
	partial, err := store.LocationPath(ctx, box.ID)
	if !errors.Is(err, catalog.ErrLocationCycle) {
		t.Fatalf("expected ErrLocationCycle, got %v", err)
	}
	if partial == "" {
		t.Fatal("expected partial path for cyclic chain")
	}
}

func TestDeleteLocationGuards(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	parent, err := store.CreateLocation(ctx, "Cellar", 0)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}
	child, err := store.CreateLocation(ctx, "Crate", parent.ID)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}

	if err := store.DeleteLocation(ctx, parent.ID); !errors.Is(err, catalog.ErrLocationInUse) {
		t.Fatalf("expected ErrLocationInUse for parent with children, got %v", err)
	}

	testsupport.MustCreateItem(t, store, &catalog.Item{Title: "Stored", LocationID: child.ID, UserID: user.ID})
	if err := store.DeleteLocation(ctx, child.ID); !errors.Is(err, catalog.ErrLocationInUse) {
		t.Fatalf("expected ErrLocationInUse for occupied location, got %v", err)
	}
}

func TestSortPreferenceRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	user := testsupport.MustUser(t, store, "admin")

	ctx := context.Background()
	pref, err := store.SortPreferenceFor(ctx, user.ID)
	if err != nil {
		t.Fatalf("SortPreferenceFor failed: %v", err)
	}
	if pref != nil {
		t.Fatalf("expected no preference yet, got %#v", pref)
	}

	want := catalog.SortPreference{Field: catalog.SortYear, Order: catalog.OrderAsc}
	if err := store.SaveSortPreference(ctx, user.ID, want); err != nil {
		t.Fatalf("SaveSortPreference failed: %v", err)
	}
	got, err := store.SortPreferenceFor(ctx, user.ID)
	if err != nil {
		t.Fatalf("SortPreferenceFor failed: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}

	// Second save overwrites.
	want2 := catalog.SortPreference{Field: catalog.SortTitle, Order: catalog.OrderDesc}
	if err := store.SaveSortPreference(ctx, user.ID, want2); err != nil {
		t.Fatalf("SaveSortPreference failed: %v", err)
	}
	got, err = store.SortPreferenceFor(ctx, user.ID)
	if err != nil {
		t.Fatalf("SortPreferenceFor failed: %v", err)
	}
	if got == nil || *got != want2 {
		t.Fatalf("expected %#v, got %#v", want2, got)
	}
}
