package xlsx

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// xfAt returns cell format styleID, or nil when it is out of range.
func xfAt(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	xfs := ss.X().CellXfs
	if xfs == nil || int(styleID) >= len(xfs.Xf) {
		return nil
	}
	return xfs.Xf[styleID]
}

// GetFontProps returns the font referenced by cell format styleID.
func GetFontProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	xf := xfAt(ss, styleID)
	if xf == nil || xf.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	if i := int(*xf.FontIdAttr); i < len(ss.X().Fonts.Font) {
		return ss.X().Fonts.Font[i]
	}
	return nil
}

// GetFillProps returns the fill referenced by cell format styleID.
func GetFillProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	xf := xfAt(ss, styleID)
	if xf == nil || xf.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	if i := int(*xf.FillIdAttr); i < len(ss.X().Fills.Fill) {
		return ss.X().Fills.Fill[i]
	}
	return nil
}

// GetBorderProps returns the border referenced by cell format styleID.
func GetBorderProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	xf := xfAt(ss, styleID)
	if xf == nil || xf.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	if i := int(*xf.BorderIdAttr); i < len(ss.X().Borders.Border) {
		return ss.X().Borders.Border[i]
	}
	return nil
}

// formatCode looks up a custom number format. Built-in ids return "".
func formatCode(ss spreadsheet.StyleSheet, id uint32) string {
	if ss.X().NumFmts == nil {
		return ""
	}
	for _, nf := range ss.X().NumFmts.NumFmt {
		if nf.NumFmtIdAttr == id {
			return nf.FormatCodeAttr
		}
	}
	return ""
}

func boolProp(props []*sml.CT_BooleanProperty) bool {
	if len(props) == 0 {
		return false
	}
	return props[0].ValAttr == nil || *props[0].ValAttr
}

func hasLine(pr *sml.CT_BorderPr) bool {
	if pr == nil {
		return false
	}
	s := pr.StyleAttr.String()
	return s != "" && s != "none"
}

// resolveStyle flattens cell format styleID into a CellStyle.
func resolveStyle(ss spreadsheet.StyleSheet, styleID uint32) CellStyle {
	var st CellStyle
	xf := xfAt(ss, styleID)
	if xf == nil {
		return st
	}
	if font := GetFontProps(ss, styleID); font != nil {
		if len(font.Name) > 0 {
			st.FontFamily = font.Name[0].ValAttr
		}
		if len(font.Sz) > 0 {
			st.FontSizePt = font.Sz[0].ValAttr
		}
		if len(font.Color) > 0 && font.Color[0].RgbAttr != nil {
			st.FontColor = normalizeColor(*font.Color[0].RgbAttr)
		}
		st.Bold = boolProp(font.B)
		st.Italic = boolProp(font.I)
		st.Underline = len(font.U) > 0
	}
	if fill := GetFillProps(ss, styleID); fill != nil && fill.PatternFill != nil && fill.PatternFill.FgColor != nil {
		if fg := fill.PatternFill.FgColor; fg.RgbAttr != nil {
			st.BackgroundColor = normalizeColor(*fg.RgbAttr)
		}
	}
	if b := GetBorderProps(ss, styleID); b != nil {
		st.Border = hasLine(b.Left) || hasLine(b.Right) || hasLine(b.Top) || hasLine(b.Bottom)
	}
	if xf.Alignment != nil {
		st.HorizontalAlign = xf.Alignment.HorizontalAttr.String()
		if xf.Alignment.WrapTextAttr != nil {
			st.WrapText = *xf.Alignment.WrapTextAttr
		}
	}
	if xf.QuotePrefixAttr != nil {
		st.QuotePrefix = *xf.QuotePrefixAttr
	}
	if xf.NumFmtIdAttr != nil {
		st.NumFmtID = *xf.NumFmtIdAttr
		st.FormatCode = formatCode(ss, st.NumFmtID)
	}
	return st
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// If the string is already 6 digits (or any other length), it is returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
