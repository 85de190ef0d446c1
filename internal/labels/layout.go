package labels

import (
	"shelf/internal/catalog"
	"shelf/internal/config"
)

// minQRSize is the smallest QR edge length ever emitted. Codes below this
// render as unreadable smudges on common label stock.
const minQRSize = 5.0

// Options describes the print sheet geometry. All lengths share one layout
// unit (millimetres on the reference stock).
type Options struct {
	LabelWidth  float64
	LabelHeight float64
	Padding     float64
	Columns     int
	MarginLeft  float64
	MarginTop   float64
	FontSize    float64

	// Vertical stacks the QR code above the text instead of beside it.
	Vertical bool

	ShowInventory bool
	ShowTitle     bool
	ShowLocation  bool

	// StartAt is the 1-based sheet position of the first real label. Earlier
	// positions are filled with blanks so a partially used sheet can be
	// reprinted without wasting labels.
	StartAt int
}

// OptionsFromConfig lifts the configured label geometry into layout options.
func OptionsFromConfig(cfg config.Labels, startAt int) Options {
	return Options{
		LabelWidth:    cfg.LabelWidth,
		LabelHeight:   cfg.LabelHeight,
		Padding:       cfg.Padding,
		Columns:       cfg.Columns,
		MarginLeft:    cfg.MarginLeft,
		MarginTop:     cfg.MarginTop,
		FontSize:      cfg.FontSize,
		Vertical:      cfg.Vertical,
		ShowInventory: cfg.ShowInventory,
		ShowTitle:     cfg.ShowTitle,
		ShowLocation:  cfg.ShowLocation,
		StartAt:       startAt,
	}
}

// Label is one positioned slot on the sheet. A blank label has no item and
// renders as empty space.
type Label struct {
	Item   *catalog.Item
	Blank  bool
	Column int
	Row    int
	X      float64
	Y      float64
	Width  float64
	Height float64
	QRSize float64
}

// Sheet is the computed layout for a print run.
type Sheet struct {
	Labels        []Label
	Columns       int
	Rows          int
	QRSize        float64
	FontSize      float64
	ShowInventory bool
	ShowTitle     bool
	ShowLocation  bool
}

// Layout positions the given items on a sheet in their given order. Items
// never reorder; a start position greater than one shifts them by inserting
// blank slots ahead of the first item.
func Layout(items []*catalog.Item, opts Options) *Sheet {
	columns := opts.Columns
	if columns < 1 {
		columns = 1
	}

	qr := qrEdge(opts)

	blanks := 0
	if opts.StartAt > 1 {
		blanks = opts.StartAt - 1
	}
	slots := make([]Label, 0, blanks+len(items))
	for i := 0; i < blanks; i++ {
		slots = append(slots, Label{Blank: true})
	}
	for _, item := range items {
		slots = append(slots, Label{Item: item, QRSize: qr})
	}

	for i := range slots {
		col := i % columns
		row := i / columns
		slots[i].Column = col
		slots[i].Row = row
		slots[i].X = opts.MarginLeft + float64(col)*opts.LabelWidth
		slots[i].Y = opts.MarginTop + float64(row)*opts.LabelHeight
		slots[i].Width = opts.LabelWidth
		slots[i].Height = opts.LabelHeight
	}

	rows := 0
	if len(slots) > 0 {
		rows = slots[len(slots)-1].Row + 1
	}
	return &Sheet{
		Labels:        slots,
		Columns:       columns,
		Rows:          rows,
		QRSize:        qr,
		FontSize:      opts.FontSize,
		ShowInventory: opts.ShowInventory,
		ShowTitle:     opts.ShowTitle,
		ShowLocation:  opts.ShowLocation,
	}
}

// qrEdge derives the QR code edge length from the usable label height. The
// vertical layout halves it because the text block sits underneath the code
// instead of beside it.
func qrEdge(opts Options) float64 {
	usable := opts.LabelHeight - 2*opts.Padding
	scale := 0.9
	if opts.Vertical {
		scale = 0.5
	}
	edge := usable * scale
	if edge < minQRSize {
		return minQRSize
	}
	return edge
}
