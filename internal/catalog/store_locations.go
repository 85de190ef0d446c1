package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// maxLocationDepth caps ancestor-chain traversal. A chain longer than this
// means the parent links form a cycle; the walk stops and reports it.
const maxLocationDepth = 20

// ErrLocationCycle indicates the location parent chain loops back on itself.
var ErrLocationCycle = errors.New("location parent chain exceeds depth limit")

// ErrLocationInUse indicates a location still has children or stored items.
var ErrLocationInUse = errors.New("location still in use")

// CreateLocation inserts a location, optionally under a parent.
func (s *Store) CreateLocation(ctx context.Context, name string, parentID int64) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("location name required")
	}
	if parentID != 0 {
		parent, err := s.GetLocation(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent location %d: %w", parentID, ErrNotFound)
		}
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO locations (name, parent_id) VALUES (?, ?)`,
		name,
		nullableInt(parentID),
	)
	if err != nil {
		return nil, fmt.Errorf("insert location: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetLocation(ctx, id)
}

// GetLocation fetches one location, or nil when it does not exist.
func (s *Store) GetLocation(ctx context.Context, id int64) (*Location, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, parent_id FROM locations WHERE id = ?`, id)
	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// ListLocations returns all locations ordered by name.
func (s *Store) ListLocations(ctx context.Context) ([]*Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, parent_id FROM locations ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// SetLocationParent moves a location under a new parent. Passing zero detaches
// it back to the root level. The parent chain is not revalidated here; callers
// rendering paths rely on LocationPath's depth cap to catch cycles.
func (s *Store) SetLocationParent(ctx context.Context, id, parentID int64) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE locations SET parent_id = ? WHERE id = ?`,
		nullableInt(parentID),
		id,
	)
	if err != nil {
		return fmt.Errorf("set location parent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLocation removes a location unless children or items still reference
// it, mirroring the admin-side safety checks.
func (s *Store) DeleteLocation(ctx context.Context, id int64) error {
	var children int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM locations WHERE parent_id = ?`, id).Scan(&children); err != nil {
		return fmt.Errorf("count child locations: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("location %d has %d child locations: %w", id, children, ErrLocationInUse)
	}

	var stored int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE location_id = ?`, id).Scan(&stored); err != nil {
		return fmt.Errorf("count stored items: %w", err)
	}
	if stored > 0 {
		return fmt.Errorf("location %d still stores %d items: %w", id, stored, ErrLocationInUse)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// LocationPath returns the display path of a location: the ancestor chain
// joined root-first with " / ". When the parent chain exceeds the depth cap
// the partial path is returned together with ErrLocationCycle so callers can
// surface the integrity problem instead of looping forever.
func (s *Store) LocationPath(ctx context.Context, id int64) (string, error) {
	var segments []string
	current := id
	for depth := 0; ; depth++ {
		if depth >= maxLocationDepth {
			return joinReversed(segments), fmt.Errorf("location %d: %w", id, ErrLocationCycle)
		}
		loc, err := s.GetLocation(ctx, current)
		if err != nil {
			return "", err
		}
		if loc == nil {
			break
		}
		segments = append(segments, loc.Name)
		if loc.ParentID == 0 {
			break
		}
		current = loc.ParentID
	}
	return joinReversed(segments), nil
}

func joinReversed(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments))
	for i := len(segments) - 1; i >= 0; i-- {
		parts = append(parts, segments[i])
	}
	return strings.Join(parts, " / ")
}

func scanLocation(scanner interface{ Scan(dest ...any) error }) (*Location, error) {
	var (
		loc      Location
		parentID sql.NullInt64
	)
	if err := scanner.Scan(&loc.ID, &loc.Name, &parentID); err != nil {
		return nil, err
	}
	loc.ParentID = parentID.Int64
	return &loc, nil
}
