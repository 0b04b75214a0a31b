// Package xlsx implements reading and writing of .xlsx workbooks without
// any external spreadsheet library. Only the structural parts needed for a
// faithful round trip of tabular data are modeled: one bold header row per
// sheet, an autofilter range, shared strings, and sparse numeric/text cells.
package xlsx

import "strconv"

// MaxCellLen is Excel's hard limit on cell text length. Longer values are
// truncated before encoding, never rejected.
const MaxCellLen = 32767

// MaxSheetNameLen is Excel's hard limit on sheet tab names.
const MaxSheetNameLen = 31

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	// KindNull marks an absent value. Null cells are never written to the
	// worksheet XML; on read they are reconstructed from the gaps.
	KindNull CellKind = iota
	// KindInt is a 64-bit integer value.
	KindInt
	// KindFloat is a floating-point value.
	KindFloat
	// KindText is a string value.
	KindText
)

// Cell is a single typed cell value.
type Cell struct {
	Kind  CellKind
	Int   int64
	Float float64
	Text  string
}

// Null returns a null cell.
func Null() Cell { return Cell{Kind: KindNull} }

// Int64 returns an integer cell.
func Int64(v int64) Cell { return Cell{Kind: KindInt, Int: v} }

// Float64 returns a floating-point cell.
func Float64(v float64) Cell { return Cell{Kind: KindFloat, Float: v} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// String renders the cell for display. Null renders as the empty string;
// floats use the same 15-significant-digit form that the encoder writes.
func (c Cell) String() string {
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'g', 15, 64)
	case KindText:
		return c.Text
	default:
		return ""
	}
}
