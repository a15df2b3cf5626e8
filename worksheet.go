package xlsxgen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// CellAddress returns the A1 reference of a zero-based column and a 1-based
// row, e.g. CellAddress(26, 3) == "AA3".
func CellAddress(col, row int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}

// ColumnLetters converts a zero-based column index into bijective base-26
// letters.
func ColumnLetters(col int) string {
	var buf []byte
	for col >= 0 {
		buf = append(buf, byte('A'+col%26))
		col = col/26 - 1
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ColumnIndex is the inverse of ColumnLetters. It returns -1 for anything
// that is not a run of upper-case letters.
func ColumnIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1
}

const (
	maxColumnChars  = 40
	wideColumnWidth = 54
	minColumnWidth  = 6
	widthScale      = 1.35
)

// ColumnWidth estimates the width of column col from the longest line of any
// data cell. override is used instead of the estimate when it is non-zero.
func ColumnWidth(rows []NormalizedRow, col int, key string, override float64) float64 {
	max := utf8.RuneCountInString(key)
	override *= widthScale

	for _, row := range rows {
		var s string
		if col < len(row) && row[col] != nil {
			s, _ = textOf(row[col])
		}
		n := 0
		for _, line := range strings.Split(s, "\n") {
			if l := utf8.RuneCountInString(line); l > n {
				n = l
			}
		}
		if n > max {
			max = n
		}
		if max > maxColumnChars {
			if override != 0 {
				return override
			}
			return wideColumnWidth
		}
	}

	width := float64(max) * widthScale
	if width <= minColumnWidth {
		return minColumnWidth
	}
	if override != 0 {
		return override
	}
	return width
}

// sheetRenderer turns normalized rows into worksheet XML.
type sheetRenderer struct {
	columns  []string
	cfg      *Config
	registry *StyleRegistry
	log      logrus.FieldLogger
}

// Rows renders the header row followed by rows as <row> elements. Header
// cells are always text, whatever the column key looks like.
func (s *sheetRenderer) Rows(rows []NormalizedRow) string {
	header := make([]string, len(s.columns))
	for i, key := range s.columns {
		header[i] = strings.ToUpper(key)
	}

	var b strings.Builder
	b.WriteString(`<row r="1">`)
	for col, key := range header {
		c := textCell(key)
		writeNode(&b, s.textNode(c, CellAddress(col, 1), s.style(1, col, key, c.quotePrefix)))
	}
	b.WriteString("</row>")
	for i, row := range rows {
		s.writeRow(&b, row, i+2)
	}
	return b.String()
}

func (s *sheetRenderer) writeRow(b *strings.Builder, row NormalizedRow, rowIndex int) {
	b.WriteString(`<row r="`)
	b.WriteString(strconv.Itoa(rowIndex))
	b.WriteString(`">`)
	for col, v := range row {
		if n, ok := s.cell(v, col, rowIndex); ok {
			writeNode(b, n)
		}
	}
	b.WriteString("</row>")
}

func (s *sheetRenderer) cell(v any, col, rowIndex int) (Node, bool) {
	c, ok := classify(v)
	if !ok {
		return Node{}, false
	}
	ref := CellAddress(col, rowIndex)

	switch c.kind {
	case cellSpecial:
		return Node{
			Name:     "c",
			Attrs:    []Attr{{"r", ref}, {"s", itoa(c.styleID)}},
			Children: []Node{{Name: "v", Text: c.value}},
		}, true
	case cellNumber:
		return Node{
			Name:     "c",
			Attrs:    []Attr{{"t", "n"}, {"r", ref}, {"s", itoa(s.style(rowIndex, col, v, false))}},
			Children: []Node{{Name: "v", Text: c.value}},
		}, true
	}
	return s.textNode(c, ref, s.style(rowIndex, col, v, c.quotePrefix)), true
}

// textNode renders an inline string cell. Header cells always take this path.
func (s *sheetRenderer) textNode(c classified, ref string, styleID int) Node {
	return Node{
		Name:  "c",
		Attrs: []Attr{{"t", "inlineStr"}, {"r", ref}, {"s", itoa(styleID)}},
		Children: []Node{{Name: "is", Children: []Node{{
			Name:  "t",
			Attrs: []Attr{{"xml:space", "preserve"}},
			Text:  c.value,
		}}}},
	}
}

// style resolves the cell format id of a numeric or text cell.
func (s *sheetRenderer) style(rowIndex, col int, v any, quotePrefix bool) int {
	header := rowIndex == 1 && s.cfg.boldHeader()

	if s.cfg.StyleResolver == nil {
		if !quotePrefix && !header && !s.cfg.WrapAllCells {
			return StylePlain
		}
		req := cannedStyle(StylePlain)
		req.WrapText = s.cfg.WrapAllCells
		req.FontBold = req.FontBold || header
		req.QuotePrefix = quotePrefix
		return s.registry.RegisterCellFormat(req)
	}

	var req CellStyleRequest
	switch st := s.cfg.StyleResolver(rowIndex, col+1, v); st.kind {
	case styleCustom:
		var problems []string
		req, problems = st.request.normalized()
		for _, p := range problems {
			s.log.Warnf("Ignoring invalid %s for cell %s", p, CellAddress(col, rowIndex))
		}
	case styleCanned:
		req = cannedStyle(st.code)
		req.WrapText = req.WrapText || s.cfg.WrapAllCells
	default:
		req = cannedStyle(StylePlain)
		req.WrapText = s.cfg.WrapAllCells
	}
	if header {
		req.FontBold = true
	}
	req.QuotePrefix = req.QuotePrefix || quotePrefix
	return s.registry.RegisterCellFormat(req)
}

// Columns renders the <cols> block. A sheet without columns gets none, since
// an empty <cols> is not valid.
func (s *sheetRenderer) Columns(rows []NormalizedRow) string {
	if len(s.columns) == 0 {
		return ""
	}
	cols := make([]Node, len(s.columns))
	for i, key := range s.columns {
		width := ColumnWidth(rows, i, key, s.cfg.ColumnWidths[key])
		cols[i] = Node{Name: "col", Attrs: []Attr{
			{"min", itoa(i + 1)},
			{"max", itoa(i + 1)},
			{"width", strconv.FormatFloat(width, 'f', -1, 64)},
			{"customWidth", "1"},
		}}
	}
	var b strings.Builder
	b.WriteString("<cols>")
	for _, c := range cols {
		writeNode(&b, c)
	}
	b.WriteString("</cols>")
	return b.String()
}
