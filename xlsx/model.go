package xlsx

import (
	"fmt"
)

// Intermediate representation of a workbook as read back from disk, used for
// previews and for checking generated files.

// CellStyle is the subset of cell formatting that xlsxgen writes.
type CellStyle struct {
	FontFamily      string
	FontSizePt      float64
	Bold            bool
	Italic          bool
	Underline       bool
	FontColor       string // "RRGGBB"
	BackgroundColor string // "RRGGBB"
	Border          bool
	HorizontalAlign string // left|center|right|justify
	WrapText        bool
	QuotePrefix     bool
	NumFmtID        uint32
	FormatCode      string // set for custom number formats
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %.1f, Bold: %t, Italic: %t, Underline: %t, FontColor: %s, BackgroundColor: %s, Border: %t, HorizontalAlign: %s, WrapText: %t, QuotePrefix: %t, NumFmtID: %d, FormatCode: %s",
		s.FontFamily, s.FontSizePt, s.Bold, s.Italic, s.Underline, s.FontColor, s.BackgroundColor, s.Border, s.HorizontalAlign, s.WrapText, s.QuotePrefix, s.NumFmtID, s.FormatCode)
}

// RenderCell is a single non-empty cell.
type RenderCell struct {
	Ref     string // e.g. "A1"
	Value   string // display value
	Raw     string // <v> or inline string content as stored
	Type    string // cell t attribute, "" when absent
	StyleID int
	Style   CellStyle
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, Raw: %s, Type: %s, StyleID: %d, Style: %s", c.Ref, c.Value, c.Raw, c.Type, c.StyleID, c.Style)
}

// RenderRow is one row of the sheet.
type RenderRow struct {
	Number int           // 1-based
	Cells  []*RenderCell // len == column count; nil for blank cells
}

// RenderSheet is one worksheet.
type RenderSheet struct {
	Name       string
	ColWidths  []float64 // in characters
	FrozenRows int
	Rows       []RenderRow
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, FrozenRows: %d, Rows: %d", s.Name, s.ColWidths, s.FrozenRows, len(s.Rows))
}

// Cell returns the cell at ref, or nil.
func (s RenderSheet) Cell(ref string) *RenderCell {
	for _, row := range s.Rows {
		for _, c := range row.Cells {
			if c != nil && c.Ref == ref {
				return c
			}
		}
	}
	return nil
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}
