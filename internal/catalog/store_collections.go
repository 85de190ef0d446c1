package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateCollection inserts a named collection.
func (s *Store) CreateCollection(ctx context.Context, name, description string) (*Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("collection name required")
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO collections (name, description) VALUES (?, ?)`,
		name,
		nullableString(strings.TrimSpace(description)),
	)
	if err != nil {
		return nil, fmt.Errorf("insert collection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Collection{ID: id, Name: name, Description: strings.TrimSpace(description)}, nil
}

// ListCollections returns all collections ordered by name.
func (s *Store) ListCollections(ctx context.Context) ([]*Collection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM collections ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []*Collection
	for rows.Next() {
		var (
			collection  Collection
			description sql.NullString
		)
		if err := rows.Scan(&collection.ID, &collection.Name, &description); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collection.Description = description.String
		collections = append(collections, &collection)
	}
	return collections, rows.Err()
}
