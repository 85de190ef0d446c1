package labels

import (
	"math"
	"testing"

	"shelf/internal/catalog"
)

func baseOptions() Options {
	return Options{
		LabelWidth:  70,
		LabelHeight: 36,
		Padding:     2,
		Columns:     3,
		MarginLeft:  4,
		MarginTop:   8,
		FontSize:    9,
	}
}

func items(n int) []*catalog.Item {
	out := make([]*catalog.Item, n)
	for i := range out {
		out[i] = &catalog.Item{ID: int64(i + 1)}
	}
	return out
}

func TestQRSizeHorizontal(t *testing.T) {
	sheet := Layout(items(1), baseOptions())
	// (36 - 2*2) * 0.9
	if math.Abs(sheet.QRSize-28.8) > 1e-9 {
		t.Fatalf("expected QR edge 28.8, got %v", sheet.QRSize)
	}
}

func TestQRSizeVertical(t *testing.T) {
	opts := baseOptions()
	opts.Vertical = true
	sheet := Layout(items(1), opts)
	// (36 - 2*2) * 0.5
	if math.Abs(sheet.QRSize-16.0) > 1e-9 {
		t.Fatalf("expected QR edge 16, got %v", sheet.QRSize)
	}
}

func TestQRSizeFloor(t *testing.T) {
	opts := baseOptions()
	opts.LabelHeight = 8
	opts.Padding = 3
	sheet := Layout(items(1), opts)
	if sheet.QRSize != 5 {
		t.Fatalf("expected floored QR edge 5, got %v", sheet.QRSize)
	}
}

func TestStartAtPrependsBlanks(t *testing.T) {
	opts := baseOptions()
	opts.StartAt = 4
	sheet := Layout(items(2), opts)

	if len(sheet.Labels) != 5 {
		t.Fatalf("expected 3 blanks + 2 items, got %d slots", len(sheet.Labels))
	}
	for i := 0; i < 3; i++ {
		if !sheet.Labels[i].Blank || sheet.Labels[i].Item != nil {
			t.Fatalf("slot %d should be blank", i)
		}
	}
	first := sheet.Labels[3]
	if first.Blank || first.Item == nil || first.Item.ID != 1 {
		t.Fatalf("first real item should land in sheet position 4, got %#v", first)
	}
	// Position 4 on a 3-column sheet is row 1, column 0.
	if first.Row != 1 || first.Column != 0 {
		t.Fatalf("expected row 1 col 0, got row %d col %d", first.Row, first.Column)
	}
}

func TestPlacementFromMarginsAndColumns(t *testing.T) {
	sheet := Layout(items(4), baseOptions())

	want := []struct {
		col, row int
		x, y     float64
	}{
		{0, 0, 4, 8},
		{1, 0, 74, 8},
		{2, 0, 144, 8},
		{0, 1, 4, 44},
	}
	for i, w := range want {
		got := sheet.Labels[i]
		if got.Column != w.col || got.Row != w.row {
			t.Fatalf("slot %d: expected col/row %d/%d, got %d/%d", i, w.col, w.row, got.Column, got.Row)
		}
		if math.Abs(got.X-w.x) > 1e-9 || math.Abs(got.Y-w.y) > 1e-9 {
			t.Fatalf("slot %d: expected position (%v,%v), got (%v,%v)", i, w.x, w.y, got.X, got.Y)
		}
	}
	if sheet.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", sheet.Rows)
	}
}

func TestOrderPreserved(t *testing.T) {
	sheet := Layout(items(3), baseOptions())
	for i, slot := range sheet.Labels {
		if slot.Item.ID != int64(i+1) {
			t.Fatalf("slot %d carries item %d, order must be preserved", i, slot.Item.ID)
		}
	}
}

func TestDegenerateColumnCount(t *testing.T) {
	opts := baseOptions()
	opts.Columns = 0
	sheet := Layout(items(2), opts)
	if sheet.Columns != 1 {
		t.Fatalf("expected column floor of 1, got %d", sheet.Columns)
	}
	if sheet.Labels[1].Row != 1 {
		t.Fatalf("single column layout should stack rows, got row %d", sheet.Labels[1].Row)
	}
}
