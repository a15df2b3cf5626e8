package xlsx

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// pxPerChar approximates Calibri 11 digit width.
const pxPerChar = 7.0

// RenderWorkbookHTML converts the IR into an HTML string. Each distinct cell
// style becomes one CSS class; frozen rows go into <thead>.
func RenderWorkbookHTML(m WorkbookModel) string {
	classes := make(map[CellStyle]string)
	var styles []CellStyle
	for _, sheet := range m.Sheets {
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if cell == nil {
					continue
				}
				if _, ok := classes[cell.Style]; !ok {
					classes[cell.Style] = fmt.Sprintf("cellstyle%d", len(styles)+1)
					styles = append(styles, cell.Style)
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString("<style>\n")
	b.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	b.WriteString(".table td, .table th { padding: 2px 4px; font-weight: normal; text-align: left; white-space: nowrap; overflow: hidden; border: 1px solid #d4d4d4; }\n")
	b.WriteString(".table td.num { text-align: right; }\n")
	for i, st := range styles {
		if css := styleToCSS(st); css != "" {
			fmt.Fprintf(&b, ".cellstyle%d { %s }\n", i+1, css)
		}
	}
	b.WriteString("</style>\n")

	for _, sheet := range m.Sheets {
		totalPx := 0.0
		for _, w := range sheet.ColWidths {
			totalPx += colPx(w)
		}
		fmt.Fprintf(&b, "<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(sheet.Name))
		fmt.Fprintf(&b, "<table class=\"table\" style=\"width:%.0fpx;\">\n", totalPx)
		b.WriteString("  <colgroup>\n")
		for _, w := range sheet.ColWidths {
			fmt.Fprintf(&b, "    <col style=\"width:%.0fpx;\">\n", colPx(w))
		}
		b.WriteString("  </colgroup>\n")

		open := ""
		for _, row := range sheet.Rows {
			section, tag := "tbody", "td"
			if row.Number <= sheet.FrozenRows {
				section, tag = "thead", "th"
			}
			if section != open {
				if open != "" {
					fmt.Fprintf(&b, "  </%s>\n", open)
				}
				fmt.Fprintf(&b, "  <%s>\n", section)
				open = section
			}
			writeRow(&b, row, tag, classes)
		}
		if open != "" {
			fmt.Fprintf(&b, "  </%s>\n", open)
		}
		b.WriteString("</table>\n</div>\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, row RenderRow, tag string, classes map[CellStyle]string) {
	fmt.Fprintf(b, "    <tr data-row=\"%d\">\n", row.Number)
	for _, cell := range row.Cells {
		if cell == nil {
			fmt.Fprintf(b, "      <%s></%s>\n", tag, tag)
			continue
		}
		class := classes[cell.Style]
		if cell.Style.HorizontalAlign == "" && cell.Type != "inlineStr" && cell.Type != "s" && cell.Type != "str" {
			class += " num"
		}
		// Excel stores explicit line breaks as \n; preserve them in HTML
		text := strings.ReplaceAll(html.EscapeString(cell.Value), "\n", "<br>")
		fmt.Fprintf(b, "      <%s data-cell=\"%s\" class=\"%s\">%s</%s>\n", tag, cell.Ref, class, text, tag)
	}
	b.WriteString("    </tr>\n")
}

func colPx(chars float64) float64 {
	return chars*pxPerChar + 5
}

// cssFontName keeps the characters a font name can safely carry inside a
// quoted CSS string.
func cssFontName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' || r == '.' {
			return r
		}
		return -1
	}, name)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// styleToCSS converts a CellStyle to CSS declarations.
func styleToCSS(s CellStyle) string {
	var b strings.Builder
	if name := cssFontName(s.FontFamily); name != "" {
		fmt.Fprintf(&b, "font-family:'%s';", name)
	}
	if s.FontSizePt > 0 {
		fmt.Fprintf(&b, "font-size:%.1fpt;", s.FontSizePt)
	}
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.Underline {
		b.WriteString("text-decoration:underline;")
	}
	if isHex(s.FontColor) {
		fmt.Fprintf(&b, "color:#%s;", s.FontColor)
	}
	if isHex(s.BackgroundColor) {
		fmt.Fprintf(&b, "background-color:#%s;", s.BackgroundColor)
	}
	if s.Border {
		b.WriteString("border:1px solid #000;")
	}
	switch s.HorizontalAlign {
	case "center", "centerContinuous", "distributed":
		b.WriteString("text-align:center;")
	case "right":
		b.WriteString("text-align:right;")
	case "justify":
		b.WriteString("text-align:justify;")
	case "left":
		b.WriteString("text-align:left;")
	}
	if s.WrapText {
		b.WriteString("white-space:normal;")
	}
	return b.String()
}
