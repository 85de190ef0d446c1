package catalog

import (
	"context"
	"fmt"
	"strings"
)

// sortCascades maps each sort field to its ORDER BY clause. The primary
// column takes the requested direction; secondary tie-breakers keep fixed
// directions so ties stay in a human-meaningful order regardless of the
// requested direction.
var sortCascades = map[string]struct {
	primary   string
	secondary string
}{
	SortTitle:  {primary: "title COLLATE NOCASE", secondary: "author COLLATE NOCASE ASC"},
	SortAuthor: {primary: "author COLLATE NOCASE", secondary: "title COLLATE NOCASE ASC, release_year DESC"},
	SortYear:   {primary: "release_year", secondary: "author COLLATE NOCASE ASC, title COLLATE NOCASE ASC"},
	SortAdded:  {primary: "id", secondary: ""},
}

// SearchItems runs a filtered, ordered, paginated query over the item table
// and returns the page plus the total match count. Unknown sort fields fall
// back to SortAdded; unknown orders to descending.
func (s *Store) SearchItems(ctx context.Context, query SearchQuery) ([]*Item, int, error) {
	where, args := buildItemFilters(query)

	countSQL := `SELECT COUNT(1) FROM items` + where
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	selectSQL := `SELECT ` + itemColumns + ` FROM items` + where + buildOrderClause(query)
	pageArgs := args
	if query.Limit > 0 {
		selectSQL += ` LIMIT ? OFFSET ?`
		pageArgs = append(append([]any{}, args...), query.Limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, selectSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, item := range items {
		if err := s.loadTracks(ctx, item); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

func buildItemFilters(query SearchQuery) (string, []any) {
	var (
		predicates []string
		args       []any
	)

	if text := strings.TrimSpace(query.Text); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		predicates = append(predicates, `(
            lower(title) LIKE ?
            OR lower(coalesce(author, '')) LIKE ?
            OR lower(inventory_number) LIKE ?
            OR lower(coalesce(barcode, '')) LIKE ?
            OR lower(coalesce(lent_to, '')) LIKE ?
            OR EXISTS (
                SELECT 1 FROM tracks
                WHERE tracks.item_id = items.id AND lower(tracks.title) LIKE ?
            )
        )`)
		for i := 0; i < 6; i++ {
			args = append(args, pattern)
		}
	}
	if query.Category != "" {
		predicates = append(predicates, `category = ?`)
		args = append(args, query.Category)
	}
	if query.LocationID != 0 {
		predicates = append(predicates, `location_id = ?`)
		args = append(args, query.LocationID)
	}
	switch query.Lent {
	case LentOnly:
		predicates = append(predicates, `lent_to IS NOT NULL AND lent_to != ''`)
	case LentExcluded:
		predicates = append(predicates, `(lent_to IS NULL OR lent_to = '')`)
	}

	if len(predicates) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}

func buildOrderClause(query SearchQuery) string {
	cascade, ok := sortCascades[query.SortField]
	if !ok {
		cascade = sortCascades[SortAdded]
	}
	direction := "DESC"
	if query.SortOrder == OrderAsc {
		direction = "ASC"
	}
	clause := " ORDER BY " + cascade.primary + " " + direction
	if cascade.secondary != "" {
		clause += ", " + cascade.secondary
	}
	if cascade.primary != "id" {
		// Stable final tie-break so pagination never straddles equal rows.
		clause += ", id ASC"
	}
	return clause
}
