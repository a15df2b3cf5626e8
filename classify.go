package xlsxgen

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SpecialFormat maps a display pattern onto a baseline cell format that
// carries the matching number format.
type SpecialFormat struct {
	Name    string
	Pattern *regexp.Regexp
	// StyleID is the cellXfs index in the baseline style sheet.
	StyleID int
	// Transform converts the stripped value into the stored number. nil keeps
	// the stripped text.
	Transform func(string) (float64, bool)
}

// Style ids of the baseline number-format cell formats.
const (
	StylePercent            = 12
	StyleDollars            = 13
	StylePounds             = 14
	StyleEuros              = 15
	StylePercent1DP         = 16
	StyleBracketNegative    = 17
	StyleBracketNegative2DP = 18
	StyleThousands          = 19
	StyleThousands2DP       = 20
	StyleInteger            = 21
	StyleDecimal2DP         = 22
	StyleDate               = 23
)

// SpecialFormats is checked in order; the first match wins.
var SpecialFormats = []SpecialFormat{
	{Name: "percent 1dp", Pattern: regexp.MustCompile(`^-?\d+\.\d%$`), StyleID: StylePercent1DP, Transform: percent},
	{Name: "percent", Pattern: regexp.MustCompile(`^-?\d+\.?\d*%$`), StyleID: StylePercent, Transform: percent},
	{Name: "dollars", Pattern: regexp.MustCompile(`^-?\$[\d,]+\.?\d*$`), StyleID: StyleDollars},
	{Name: "pounds", Pattern: regexp.MustCompile(`^-?£[\d,]+\.?\d*$`), StyleID: StylePounds},
	{Name: "euros", Pattern: regexp.MustCompile(`^-?€[\d,]+\.?\d*$`), StyleID: StyleEuros},
	{Name: "integer", Pattern: regexp.MustCompile(`^-?\d+$`), StyleID: StyleInteger},
	{Name: "decimal 2dp", Pattern: regexp.MustCompile(`^-?\d+\.\d{2}$`), StyleID: StyleDecimal2DP},
	{Name: "bracket negative", Pattern: regexp.MustCompile(`^\([\d,]+\)$`), StyleID: StyleBracketNegative, Transform: negate},
	{Name: "bracket negative 2dp", Pattern: regexp.MustCompile(`^\([\d,]+\.\d{2}\)$`), StyleID: StyleBracketNegative2DP, Transform: negate},
	{Name: "thousands", Pattern: regexp.MustCompile(`^-?[\d,]+$`), StyleID: StyleThousands},
	{Name: "thousands 2dp", Pattern: regexp.MustCompile(`^-?[\d,]+\.\d{2}$`), StyleID: StyleThousands2DP},
	{Name: "date", Pattern: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), StyleID: StyleDate, Transform: epochDays},
}

var (
	leadingZero = regexp.MustCompile(`^0\d+`)
	numeric     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	decoration  = regexp.MustCompile(`[^\d.\-]`)
	controls    = regexp.MustCompile(`[\x00-\x09\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
)

func percent(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f / 100, true
}

func negate(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return -f, true
}

// epochDays converts yyyy-mm-dd into days since 1899-12-30.
func epochDays(s string) (float64, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	return math.Floor(25569 + float64(t.UnixMilli())/86400000 + 0.5), true
}

func formatNumber(f float64) string {
	if f == 0 {
		f = 0 // no "-0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type cellKind int

const (
	cellSpecial cellKind = iota + 1
	cellNumber
	cellText
)

type classified struct {
	kind        cellKind
	value       string // <v> or escaped <t> content
	styleID     int    // set for cellSpecial
	quotePrefix bool
}

// textOf returns the text form of v and whether v is a number.
func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, false
	case json.Number:
		return x.String(), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x), false
		}
		return formatNumber(x), true
	case float32:
		return textOf(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), true
	}
	return fmt.Sprint(v), false
}

// classify decides how v is stored. It returns false for nil values, which
// produce no cell.
func classify(v any) (classified, bool) {
	if v == nil {
		return classified{}, false
	}
	text, isNumber := textOf(v)

	if !isNumber && !leadingZero.MatchString(text) {
		for _, sf := range SpecialFormats {
			if !sf.Pattern.MatchString(text) {
				continue
			}
			val := decoration.ReplaceAllString(text, "")
			if sf.Transform == nil && !isFloat(val) {
				continue
			}
			if sf.Transform != nil {
				f, ok := sf.Transform(val)
				if !ok {
					continue
				}
				val = formatNumber(f)
			}
			return classified{kind: cellSpecial, value: val, styleID: sf.StyleID}, true
		}
	}

	if isNumber || numeric.MatchString(text) && !leadingZero.MatchString(text) {
		return classified{kind: cellNumber, value: text}, true
	}

	return textCell(text), true
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// textCell stores text as an inline string. Invalid UTF-8 is replaced so the
// worksheet stays well-formed.
func textCell(text string) classified {
	text = strings.ToValidUTF8(text, "\uFFFD")
	return classified{
		kind:        cellText,
		value:       Escape(controls.ReplaceAllString(text, "")),
		quotePrefix: strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-") || strings.HasPrefix(text, "="),
	}
}
