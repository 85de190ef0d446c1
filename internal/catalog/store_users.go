package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EnsureUser returns the user with the given name, creating it on first use.
func (s *Store) EnsureUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}

	user, err := s.GetUserByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (username, created_at) VALUES (?, ?)`,
		username,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &User{ID: id, Username: username, CreatedAt: now}, nil
}

// GetUserByName fetches a user by username, or nil when absent.
func (s *Store) GetUserByName(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, created_at FROM users WHERE username = ?`, username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SortPreferenceFor returns the persisted sort preference of a user, or nil
// when the user never chose one.
func (s *Store) SortPreferenceFor(ctx context.Context, userID int64) (*SortPreference, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT sort_field, sort_order FROM sort_preferences WHERE user_id = ?`,
		userID,
	)
	var pref SortPreference
	if err := row.Scan(&pref.Field, &pref.Order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sort preference: %w", err)
	}
	return &pref, nil
}

// SaveSortPreference upserts the durable sort preference for a user.
func (s *Store) SaveSortPreference(ctx context.Context, userID int64, pref SortPreference) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sort_preferences (user_id, sort_field, sort_order, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(user_id) DO UPDATE SET
             sort_field = excluded.sort_field,
             sort_order = excluded.sort_order,
             updated_at = excluded.updated_at`,
		userID,
		pref.Field,
		pref.Order,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save sort preference: %w", err)
	}
	return nil
}

func scanUser(scanner interface{ Scan(dest ...any) error }) (*User, error) {
	var (
		user       User
		createdRaw string
	)
	if err := scanner.Scan(&user.ID, &user.Username, &createdRaw); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		user.CreatedAt = created
	}
	return &user, nil
}
