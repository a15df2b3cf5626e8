package xlsx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// defaultColWidth is the width, in characters, of a column without <col>.
const defaultColWidth = 8.43

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate representation.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, fmt.Errorf("read workbook: %w", err)
	}

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, parseSheet(wb, sheet))
	}
	return model, nil
}

// ParseBytes is ParseWorkbookModel for an in-memory document.
func ParseBytes(doc []byte) (WorkbookModel, error) {
	return ParseWorkbookModel(bytes.NewReader(doc), int64(len(doc)))
}

func parseSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet) RenderSheet {
	maxCols := 0
	for _, row := range sheet.Rows() {
		for _, cell := range row.Cells() {
			col, err := cell.Column()
			if err != nil {
				continue
			}
			if n := int(reference.ColumnToIndex(col)) + 1; n > maxCols {
				maxCols = n
			}
		}
	}
	if cols := sheet.X().Cols; len(cols) > 0 {
		for _, c := range cols[0].Col {
			if int(c.MaxAttr) > maxCols {
				maxCols = int(c.MaxAttr)
			}
		}
	}

	rs := RenderSheet{
		Name:      sheet.Name(),
		ColWidths: make([]float64, maxCols),
	}
	for c := 0; c < maxCols; c++ {
		rs.ColWidths[c] = defaultColWidth
		col := sheet.Column(uint32(c + 1))
		if col.X().CustomWidthAttr != nil && *col.X().CustomWidthAttr && col.X().WidthAttr != nil {
			rs.ColWidths[c] = *col.X().WidthAttr
		}
	}

	if views := sheet.X().SheetViews; views != nil && len(views.SheetView) > 0 {
		if pane := views.SheetView[0].Pane; pane != nil && pane.YSplitAttr != nil {
			rs.FrozenRows = int(*pane.YSplitAttr)
		}
	}

	for _, row := range sheet.Rows() {
		rr := RenderRow{Number: int(row.RowNumber()), Cells: make([]*RenderCell, maxCols)}
		for _, cell := range row.Cells() {
			col, err := cell.Column()
			if err != nil {
				continue
			}
			rr.Cells[reference.ColumnToIndex(col)] = parseCell(wb, cell, col, rr.Number)
		}
		rs.Rows = append(rs.Rows, rr)
	}
	return rs
}

func parseCell(wb *spreadsheet.Workbook, cell spreadsheet.Cell, col string, row int) *RenderCell {
	x := cell.X()
	rc := &RenderCell{
		Ref:  fmt.Sprintf("%s%d", col, row),
		Type: x.TAttr.String(),
	}
	if x.SAttr != nil {
		rc.StyleID = int(*x.SAttr)
		rc.Style = resolveStyle(wb.StyleSheet, *x.SAttr)
	}

	switch {
	case rc.Type == "inlineStr":
		if x.Is != nil && x.Is.T != nil {
			rc.Raw = *x.Is.T
		}
		rc.Value = rc.Raw
	case x.V != nil:
		rc.Raw = *x.V
		rc.Value = cell.GetFormattedValue()
	}
	return rc
}
