package xlsxgen

import (
	"fmt"
	"strings"
)

// Record is one input row keyed by column. Values are strings, numbers,
// json.Number or nil.
type Record map[string]any

// NormalizedRow holds the values of one row in column order.
type NormalizedRow []any

// Alignment is the horizontal alignment of a cell.
type Alignment string

const (
	AlignNone    Alignment = ""
	AlignLeft    Alignment = "left"
	AlignRight   Alignment = "right"
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "justify"
)

func (a Alignment) valid() bool {
	switch a {
	case AlignNone, AlignLeft, AlignRight, AlignCenter, AlignJustify:
		return true
	}
	return false
}

// CellStyleRequest describes the formatting of a cell. Two equal requests always
// resolve to the same cell format id within one conversion.
type CellStyleRequest struct {
	FontBold    bool      `json:"bold" yaml:"bold" mapstructure:"bold"`
	Underline   bool      `json:"underline" yaml:"underline" mapstructure:"underline"`
	Italic      bool      `json:"italic" yaml:"italic" mapstructure:"italic"`
	Border      bool      `json:"border" yaml:"border" mapstructure:"border"`
	FontColor   string    `json:"fontColor" yaml:"fontColor" mapstructure:"fontColor"` // "#RRGGBB" or "AARRGGBB"
	BgColor     string    `json:"bgColor" yaml:"bgColor" mapstructure:"bgColor"`
	WrapText    bool      `json:"wrap" yaml:"wrap" mapstructure:"wrap"`
	Alignment   Alignment `json:"alignment" yaml:"alignment" mapstructure:"alignment"`
	QuotePrefix bool      `json:"quotePrefix" yaml:"quotePrefix" mapstructure:"quotePrefix"`
}

func (r CellStyleRequest) String() string {
	return fmt.Sprintf("Bold: %t, Underline: %t, Italic: %t, Border: %t, FontColor: %s, BgColor: %s, Wrap: %t, Alignment: %s, QuotePrefix: %t",
		r.FontBold, r.Underline, r.Italic, r.Border, r.FontColor, r.BgColor, r.WrapText, r.Alignment, r.QuotePrefix)
}

// fontKind picks the single font variant a request maps to. Bold wins over
// italic, italic over underline.
func (r CellStyleRequest) fontKind() FontKind {
	switch {
	case r.FontBold:
		return FontBold
	case r.Italic:
		return FontItalic
	case r.Underline:
		return FontUnderlined
	}
	return FontNormal
}

// normalized returns r with colors converted to ARGB and an unknown alignment
// dropped. Invalid colors are dropped.
func (r CellStyleRequest) normalized() (CellStyleRequest, []string) {
	var problems []string
	if r.FontColor != "" {
		c, ok := argb(r.FontColor)
		if !ok {
			problems = append(problems, fmt.Sprintf("font color %q", r.FontColor))
		}
		r.FontColor = c
	}
	if r.BgColor != "" {
		c, ok := argb(r.BgColor)
		if !ok {
			problems = append(problems, fmt.Sprintf("background color %q", r.BgColor))
		}
		r.BgColor = c
	}
	if !r.Alignment.valid() {
		problems = append(problems, fmt.Sprintf("alignment %q", r.Alignment))
		r.Alignment = AlignNone
	}
	return r, problems
}

// argb converts "#RRGGBB", "RRGGBB" or "AARRGGBB" into upper-case "AARRGGBB".
func argb(color string) (string, bool) {
	hex := strings.ToUpper(strings.TrimPrefix(color, "#"))
	for _, c := range hex {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return "", false
		}
	}
	switch len(hex) {
	case 6:
		return "FF" + hex, true
	case 8:
		return hex, true
	}
	return "", false
}

// FontKind is the variant of a registered font.
type FontKind int

const (
	FontNormal FontKind = iota
	FontBold
	FontItalic
	FontUnderlined
)

// baselineFontID is the font in the baseline style sheet for each kind.
var baselineFontID = map[FontKind]int{
	FontNormal:     0,
	FontBold:       2,
	FontItalic:     3,
	FontUnderlined: 4,
}

func (k FontKind) String() string {
	switch k {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontUnderlined:
		return "underlined"
	}
	return "normal"
}

type styleKind int

const (
	styleNone styleKind = iota
	styleCanned
	styleCustom
)

// Style is the result of a StyleResolver: no styling, a canned style code or a
// full request.
type Style struct {
	kind    styleKind
	code    int
	request CellStyleRequest
}

// NoStyle leaves the cell with the default style.
func NoStyle() Style { return Style{} }

// CannedStyle selects one of the predefined bundles. Codes are clamped to 0..11.
func CannedStyle(code int) Style { return Style{kind: styleCanned, code: code} }

// CustomStyle uses req as the full style of the cell.
func CustomStyle(req CellStyleRequest) Style { return Style{kind: styleCustom, request: req} }

// StyleResolver picks the style of a cell. row and col are 1-based; row 1 is the
// header.
type StyleResolver func(row, col int, value any) Style

// Canned style codes. They match cellXfs 0..11 of the baseline style sheet.
const (
	StylePlain = iota
	StyleBorder
	StyleBold
	StyleItalic
	StyleUnderline
	StyleBoldBorder
	StyleLeft
	StyleCenter
	StyleRight
	StyleJustify
	StyleWrap
	StyleWrapBold
)

var cannedStyles = [...]CellStyleRequest{
	StylePlain:      {},
	StyleBorder:     {Border: true},
	StyleBold:       {FontBold: true},
	StyleItalic:     {Italic: true},
	StyleUnderline:  {Underline: true},
	StyleBoldBorder: {FontBold: true, Border: true},
	StyleLeft:       {Alignment: AlignLeft},
	StyleCenter:     {Alignment: AlignCenter},
	StyleRight:      {Alignment: AlignRight},
	StyleJustify:    {Alignment: AlignJustify},
	StyleWrap:       {WrapText: true},
	StyleWrapBold:   {FontBold: true, WrapText: true},
}

// cannedStyle expands code into its bundle, clamping it to the table.
func cannedStyle(code int) CellStyleRequest {
	if code < 0 {
		code = -code
	}
	if code >= len(cannedStyles) {
		code = len(cannedStyles) - 1
	}
	return cannedStyles[code]
}

// Config controls one conversion.
type Config struct {
	// Columns lists the record keys to export, in order. When empty the
	// columns are derived from the records.
	Columns []string
	// BoldHeaderRow bolds the header row. nil means true. An explicit false
	// also turns off the header bold that a StyleResolver would otherwise get.
	BoldHeaderRow *bool
	// WrapAllCells wraps text in every cell that is not explicitly styled.
	WrapAllCells bool
	// ColumnWidths overrides the computed width per column key.
	ColumnWidths map[string]float64
	// StyleResolver picks per-cell styles. Optional.
	StyleResolver StyleResolver
}

func (c *Config) boldHeader() bool {
	return c.BoldHeaderRow == nil || *c.BoldHeaderRow
}
