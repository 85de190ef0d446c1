package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Item describes a catalog item in a transport-friendly format.
type Item struct {
	ID              int64   `json:"id"`
	InventoryNumber string  `json:"inventoryNumber"`
	Barcode         string  `json:"barcode,omitempty"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Author          string  `json:"author,omitempty"`
	ReleaseYear     int     `json:"releaseYear,omitempty"`
	Description     string  `json:"description,omitempty"`
	ImageFilename   string  `json:"imageFilename,omitempty"`
	LocationID      int64   `json:"locationId,omitempty"`
	CollectionID    int64   `json:"collectionId,omitempty"`
	VolumeNumber    int     `json:"volumeNumber,omitempty"`
	LentTo          string  `json:"lentTo,omitempty"`
	LentAt          string  `json:"lentAt,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	Tracks          []Track `json:"tracks,omitempty"`
}

// Track describes one track row of an item.
type Track struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}

// Location describes a storage location including its display path.
type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parentId,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Collection describes a named item grouping.
type Collection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Filters echoes the list-view parameters as applied, keyed by their request
// parameter names.
type Filters struct {
	Query     string `json:"q"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	Lent      string `json:"lent"`
	SortField string `json:"sort_field"`
	SortOrder string `json:"sort_order"`
	Limit     string `json:"limit"`
}

// Pagination describes the returned slice of a paged list.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// ItemPage is the list-view response. Pagination is null when the whole
// result set was returned unpaged.
type ItemPage struct {
	Items        []Item      `json:"items"`
	Filters      Filters     `json:"filters"`
	FilterActive bool        `json:"filter_active"`
	Pagination   *Pagination `json:"pagination"`
}

// LabelSlot is one positioned label on a print sheet.
type LabelSlot struct {
	Blank  bool    `json:"blank"`
	ItemID int64   `json:"itemId,omitempty"`
	Column int     `json:"column"`
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	QRSize float64 `json:"qrSize,omitempty"`
}

// LabelSheet is the computed layout for a label print run.
type LabelSheet struct {
	Labels        []LabelSlot `json:"labels"`
	Columns       int         `json:"columns"`
	Rows          int         `json:"rows"`
	QRSize        float64     `json:"qrSize"`
	FontSize      float64     `json:"fontSize"`
	ShowInventory bool        `json:"showInventory"`
	ShowTitle     bool        `json:"showTitle"`
	ShowLocation  bool        `json:"showLocation"`
}
