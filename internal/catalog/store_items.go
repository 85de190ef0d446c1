package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

const itemColumns = "id, inventory_number, barcode, title, category, author, release_year, description, image_filename, location_id, collection_id, volume_number, lent_to, lent_at, created_at, user_id"

// CreateItem inserts a new catalog item and its tracks. An empty inventory
// number is replaced with a generated one.
func (s *Store) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, errors.New("item title required")
	}
	if item.UserID == 0 {
		return nil, errors.New("item owner required")
	}
	if item.Category == "" {
		item.Category = CategoryOther
	}
	if strings.TrimSpace(item.InventoryNumber) == "" {
		item.InventoryNumber = generateInventoryNumber()
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO items (
            inventory_number, barcode, title, category, author, release_year,
            description, image_filename, location_id, collection_id,
            volume_number, lent_to, lent_at, created_at, user_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.InventoryNumber,
		nullableString(item.Barcode),
		item.Title,
		item.Category,
		nullableString(item.Author),
		nullableInt(int64(item.ReleaseYear)),
		nullableString(item.Description),
		nullableString(item.ImageFilename),
		nullableInt(item.LocationID),
		nullableInt(item.CollectionID),
		nullableInt(int64(item.VolumeNumber)),
		nil,
		nil,
		now.Format(time.RFC3339Nano),
		item.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if len(item.Tracks) > 0 {
		if err := s.ReplaceTracks(ctx, id, item.Tracks); err != nil {
			return nil, err
		}
	}

	return s.GetItem(ctx, id)
}

// GetItem fetches an item with its tracks. Returns nil when no item matches.
func (s *Store) GetItem(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := s.loadTracks(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// FindByBarcode returns the item carrying the given barcode, or nil.
func (s *Store) FindByBarcode(ctx context.Context, barcode string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE barcode = ?`, barcode)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by barcode: %w", err)
	}
	if err := s.loadTracks(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem persists changes to descriptive and placement fields. Lending
// state is owned by Lend and Return and is not written here.
func (s *Store) UpdateItem(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE items
         SET inventory_number = ?, barcode = ?, title = ?, category = ?,
             author = ?, release_year = ?, description = ?, image_filename = ?,
             location_id = ?, collection_id = ?, volume_number = ?
         WHERE id = ?`,
		item.InventoryNumber,
		nullableString(item.Barcode),
		item.Title,
		item.Category,
		nullableString(item.Author),
		nullableInt(int64(item.ReleaseYear)),
		nullableString(item.Description),
		nullableString(item.ImageFilename),
		nullableInt(item.LocationID),
		nullableInt(item.CollectionID),
		nullableInt(int64(item.VolumeNumber)),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
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

// DeleteItem removes an item; its tracks cascade.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Lend marks an item as lent to a borrower, stamping the loan time. The
// lending invariant (lent_at set iff lent_to set) is enforced here.
func (s *Store) Lend(ctx context.Context, id int64, borrower string) (*Item, error) {
	borrower = strings.TrimSpace(borrower)
	if borrower == "" {
		return nil, errors.New("borrower name required")
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE items SET lent_to = ?, lent_at = ? WHERE id = ?`,
		borrower,
		now.Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("lend item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetItem(ctx, id)
}

// Return clears the lending state of an item.
func (s *Store) Return(ctx context.Context, id int64) (*Item, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE items SET lent_to = NULL, lent_at = NULL WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("return item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetItem(ctx, id)
}

// ReplaceTracks swaps the full track list of an item.
func (s *Store) ReplaceTracks(ctx context.Context, itemID int64, tracks []Track) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tracks tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("clear tracks: %w", err)
	}
	for _, track := range tracks {
		if strings.TrimSpace(track.Title) == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO tracks (item_id, position, title, duration) VALUES (?, ?, ?, ?)`,
			itemID,
			track.Position,
			track.Title,
			nullableString(track.Duration),
		); err != nil {
			return fmt.Errorf("insert track: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tracks: %w", err)
	}
	return nil
}

func (s *Store) loadTracks(ctx context.Context, item *Item) error {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, item_id, position, title, duration FROM tracks WHERE item_id = ? ORDER BY position, id`,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var (
			track    Track
			position sql.NullInt64
			duration sql.NullString
		)
		if err := rows.Scan(&track.ID, &track.ItemID, &position, &track.Title, &duration); err != nil {
			return fmt.Errorf("scan track: %w", err)
		}
		track.Position = int(position.Int64)
		track.Duration = duration.String
		tracks = append(tracks, track)
	}
	item.Tracks = tracks
	return rows.Err()
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id           int64
		inventory    string
		barcode      sql.NullString
		title        string
		category     string
		author       sql.NullString
		releaseYear  sql.NullInt64
		description  sql.NullString
		imageFile    sql.NullString
		locationID   sql.NullInt64
		collectionID sql.NullInt64
		volumeNumber sql.NullInt64
		lentTo       sql.NullString
		lentAtRaw    sql.NullString
		createdRaw   sql.NullString
		userID       int64
	)

	if err := scanner.Scan(
		&id,
		&inventory,
		&barcode,
		&title,
		&category,
		&author,
		&releaseYear,
		&description,
		&imageFile,
		&locationID,
		&collectionID,
		&volumeNumber,
		&lentTo,
		&lentAtRaw,
		&createdRaw,
		&userID,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:              id,
		InventoryNumber: inventory,
		Barcode:         barcode.String,
		Title:           title,
		Category:        category,
		Author:          author.String,
		ReleaseYear:     int(releaseYear.Int64),
		Description:     description.String,
		ImageFilename:   imageFile.String,
		LocationID:      locationID.Int64,
		CollectionID:    collectionID.Int64,
		VolumeNumber:    int(volumeNumber.Int64),
		LentTo:          lentTo.String,
		UserID:          userID,
	}
	if lentAtRaw.Valid {
		if lentAt, err := parseTimeString(lentAtRaw.String); err == nil {
			item.LentAt = &lentAt
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	return item, nil
}

func generateInventoryNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
