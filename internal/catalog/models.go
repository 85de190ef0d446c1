package catalog

import "time"

// Category labels the physical kind of a catalog item. Categories are free
// strings in storage; these constants cover the values the resolver guesses.
const (
	CategoryBook  = "Book"
	CategoryCD    = "CD"
	CategoryVinyl = "Vinyl"
	CategoryFilm  = "Film"
	CategoryGame  = "Game"
	CategoryOther = "Other"
)

// Item is a single inventoried physical object.
//
// Lending invariant: LentAt is set if and only if LentTo is non-empty. The
// store enforces this in Lend and Return; callers never write the pair
// directly.
type Item struct {
	ID              int64
	InventoryNumber string
	Barcode         string
	Title           string
	Category        string
	Author          string
	ReleaseYear     int
	Description     string
	ImageFilename   string
	LocationID      int64
	CollectionID    int64
	VolumeNumber    int
	LentTo          string
	LentAt          *time.Time
	CreatedAt       time.Time
	UserID          int64
	Tracks          []Track
}

// OnLoan reports whether the item is currently lent out.
func (i *Item) OnLoan() bool {
	return i.LentTo != ""
}

// Track belongs to exactly one item. Position orders tracks for display and
// is not required to be unique.
type Track struct {
	ID       int64
	ItemID   int64
	Position int
	Title    string
	Duration string
}

// Location is a node in the self-referential storage tree. ParentID zero
// means the location is a root.
type Location struct {
	ID       int64
	Name     string
	ParentID int64
}

// Collection is a flat named grouping of items.
type Collection struct {
	ID          int64
	Name        string
	Description string
}

// User owns catalog items and carries the durable sort preference.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// SortPreference is the per-user default ordering for the list view.
type SortPreference struct {
	Field string
	Order string
}

// Sort field and order values accepted by SearchItems.
const (
	SortAdded  = "added"
	SortTitle  = "title"
	SortAuthor = "author"
	SortYear   = "year"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// LentFilter narrows a search by lending state.
type LentFilter int

const (
	LentAny LentFilter = iota
	LentOnly
	LentExcluded
)

// SearchQuery describes one list-view query against the item table. Zero
// values mean "no constraint". Limit zero returns everything.
type SearchQuery struct {
	Text       string
	Category   string
	LocationID int64
	Lent       LentFilter
	SortField  string
	SortOrder  string
	Limit      int
	Offset     int
}
