package testsupport

import (
	"context"
	"testing"

	"shelf/internal/catalog"
	"shelf/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustUser ensures a user exists for tests.
func MustUser(t testing.TB, store *catalog.Store, username string) *catalog.User {
	t.Helper()

	user, err := store.EnsureUser(context.Background(), username)
	if err != nil {
		t.Fatalf("store.EnsureUser: %v", err)
	}
	return user
}

// MustCreateItem inserts an item for tests.
func MustCreateItem(t testing.TB, store *catalog.Store, item *catalog.Item) *catalog.Item {
	t.Helper()

	created, err := store.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatalf("store.CreateItem: %v", err)
	}
	return created
}
