package api

import (
	"shelf/internal/catalog"
	"shelf/internal/labels"
	"shelf/internal/listing"
	"shelf/internal/session"
)

// FromItem converts a catalog item to its transport representation.
func FromItem(item *catalog.Item) Item {
	if item == nil {
		return Item{}
	}
	out := Item{
		ID:              item.ID,
		InventoryNumber: item.InventoryNumber,
		Barcode:         item.Barcode,
		Title:           item.Title,
		Category:        item.Category,
		Author:          item.Author,
		ReleaseYear:     item.ReleaseYear,
		Description:     item.Description,
		ImageFilename:   item.ImageFilename,
		LocationID:      item.LocationID,
		CollectionID:    item.CollectionID,
		VolumeNumber:    item.VolumeNumber,
		LentTo:          item.LentTo,
	}
	if item.LentAt != nil {
		out.LentAt = item.LentAt.Format(dateTimeFormat)
	}
	if !item.CreatedAt.IsZero() {
		out.CreatedAt = item.CreatedAt.Format(dateTimeFormat)
	}
	for _, track := range item.Tracks {
		out.Tracks = append(out.Tracks, Track{
			Position: track.Position,
			Title:    track.Title,
			Duration: track.Duration,
		})
	}
	return out
}

// FromItems converts a slice of catalog items.
func FromItems(items []*catalog.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

// FromLocation converts a location; path may be empty when not computed.
func FromLocation(loc *catalog.Location, path string) Location {
	if loc == nil {
		return Location{}
	}
	return Location{
		ID:       loc.ID,
		Name:     loc.Name,
		ParentID: loc.ParentID,
		Path:     path,
	}
}

// FromCollection converts a collection.
func FromCollection(collection *catalog.Collection) Collection {
	if collection == nil {
		return Collection{}
	}
	return Collection{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
	}
}

// FromFilters converts remembered filter state for echoing.
func FromFilters(state session.FilterState) Filters {
	return Filters{
		Query:     state.Query,
		Category:  state.Category,
		Location:  state.Location,
		Lent:      state.Lent,
		SortField: state.SortField,
		SortOrder: state.SortOrder,
		Limit:     state.Limit,
	}
}

// FromPage converts a listing result.
func FromPage(page *listing.Page) ItemPage {
	if page == nil {
		return ItemPage{Items: []Item{}}
	}
	out := ItemPage{
		Items:        FromItems(page.Items),
		Filters:      FromFilters(page.Filters),
		FilterActive: page.FilterActive,
	}
	if page.Pagination != nil {
		out.Pagination = &Pagination{
			Page:    page.Pagination.Page,
			PerPage: page.Pagination.PerPage,
			Total:   page.Pagination.Total,
		}
	}
	return out
}

// FromSheet converts a computed label sheet.
func FromSheet(sheet *labels.Sheet) LabelSheet {
	if sheet == nil {
		return LabelSheet{Labels: []LabelSlot{}}
	}
	out := LabelSheet{
		Labels:        make([]LabelSlot, 0, len(sheet.Labels)),
		Columns:       sheet.Columns,
		Rows:          sheet.Rows,
		QRSize:        sheet.QRSize,
		FontSize:      sheet.FontSize,
		ShowInventory: sheet.ShowInventory,
		ShowTitle:     sheet.ShowTitle,
		ShowLocation:  sheet.ShowLocation,
	}
	for _, slot := range sheet.Labels {
		converted := LabelSlot{
			Blank:  slot.Blank,
			Column: slot.Column,
			Row:    slot.Row,
			X:      slot.X,
			Y:      slot.Y,
			Width:  slot.Width,
			Height: slot.Height,
			QRSize: slot.QRSize,
		}
		if slot.Item != nil {
			converted.ItemID = slot.Item.ID
		}
		out.Labels = append(out.Labels, converted)
	}
	return out
}
