package xlsxgen

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

func TestCellAddress(t *testing.T) {
	assert.Equal(t, "A1", CellAddress(0, 1))
	assert.Equal(t, "Z1", CellAddress(25, 1))
	assert.Equal(t, "AA3", CellAddress(26, 3))
	assert.Equal(t, "AZ2", CellAddress(51, 2))
	assert.Equal(t, "BA2", CellAddress(52, 2))
	assert.Equal(t, "ZZ5", CellAddress(701, 5))
	assert.Equal(t, "AAA1", CellAddress(702, 1))
}

func TestColumnLettersRoundTrip(t *testing.T) {
	for i := 0; i <= 700; i++ {
		letters := ColumnLetters(i)
		assert.Equal(t, i, ColumnIndex(letters), letters)
		assert.Equal(t, uint32(i), reference.ColumnToIndex(letters), letters)
	}
	assert.Equal(t, -1, ColumnIndex(""))
	assert.Equal(t, -1, ColumnIndex("a1"))
}

func TestColumnWidth(t *testing.T) {
	multiline := strings.Repeat("abcdefghij\n", 7) + "abcdefghij"
	rows := []NormalizedRow{{multiline}, {nil}, {"short"}}
	assert.InDelta(t, 13.5, ColumnWidth(rows, 0, "notes", 0), 1e-9)

	long := []NormalizedRow{{strings.Repeat("x", 41)}, {"y"}}
	assert.InDelta(t, 54, ColumnWidth(long, 0, "k", 0), 1e-9)
	assert.InDelta(t, 27, ColumnWidth(long, 0, "k", 20), 1e-9)

	tiny := []NormalizedRow{{"b"}}
	assert.InDelta(t, 6, ColumnWidth(tiny, 0, "a", 0), 1e-9)
	assert.InDelta(t, 6, ColumnWidth(tiny, 0, "a", 30), 1e-9)

	medium := []NormalizedRow{{"0123456789"}}
	assert.InDelta(t, 13.5, ColumnWidth(medium, 0, "id", 0), 1e-9)
	assert.InDelta(t, 40.5, ColumnWidth(medium, 0, "id", 30), 1e-9)

	numbers := []NormalizedRow{{12345.5}}
	assert.InDelta(t, 9.45, ColumnWidth(numbers, 0, "n", 0), 1e-9)

	wide := []NormalizedRow{{"ééééééé"}}
	assert.InDelta(t, 9.45, ColumnWidth(wide, 0, "k", 0), 1e-9)
}

func newRenderer(t *testing.T, columns []string, cfg Config) *sheetRenderer {
	t.Helper()
	tmpl, err := EmbeddedTemplates{}.Template(PartStyles)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	return &sheetRenderer{columns: columns, cfg: &cfg, registry: NewStyleRegistry(tmpl, log), log: log}
}

func TestRows(t *testing.T) {
	bold := false
	s := newRenderer(t, []string{"a", "b"}, Config{BoldHeaderRow: &bold})

	out := s.Rows([]NormalizedRow{{"x", nil}, {nil, nil}})
	assert.Equal(t,
		`<row r="1"><c t="inlineStr" r="A1" s="0"><is><t xml:space="preserve">A</t></is></c><c t="inlineStr" r="B1" s="0"><is><t xml:space="preserve">B</t></is></c></row>`+
			`<row r="2"><c t="inlineStr" r="A2" s="0"><is><t xml:space="preserve">x</t></is></c></row>`+
			`<row r="3"></row>`,
		out)
}

func TestHeaderKeysStayText(t *testing.T) {
	s := newRenderer(t, []string{"2024", "1,000", "2020-01-01"}, Config{})

	out := s.Rows(nil)
	assert.Equal(t,
		`<row r="1"><c t="inlineStr" r="A1" s="24"><is><t xml:space="preserve">2024</t></is></c>`+
			`<c t="inlineStr" r="B1" s="24"><is><t xml:space="preserve">1,000</t></is></c>`+
			`<c t="inlineStr" r="C1" s="24"><is><t xml:space="preserve">2020-01-01</t></is></c></row>`,
		out)
	require.Len(t, s.registry.xfs, 1)
	assert.True(t, s.registry.xfs[0].Request.FontBold)
}

func TestNumericCell(t *testing.T) {
	s := newRenderer(t, []string{"n"}, Config{})
	n, ok := s.cell(1.5, 0, 2)
	require.True(t, ok)
	assert.Equal(t, `<c t="n" r="A2" s="0"><v>1.5</v></c>`, Build(n))

	n, ok = s.cell("$5", 0, 2)
	require.True(t, ok)
	assert.Equal(t, `<c r="A2" s="13"><v>5</v></c>`, Build(n))
}

func TestQuotePrefixCell(t *testing.T) {
	s := newRenderer(t, []string{"f"}, Config{})
	n, ok := s.cell("=SUM(A1)", 0, 2)
	require.True(t, ok)
	assert.Equal(t, `<c t="inlineStr" r="A2" s="24"><is><t xml:space="preserve">=SUM(A1)</t></is></c>`, Build(n))
	assert.True(t, s.registry.xfs[0].Request.QuotePrefix)
}

func TestHeaderBoldUnderResolver(t *testing.T) {
	var calls [][2]int
	s := newRenderer(t, []string{"a"}, Config{StyleResolver: func(row, col int, _ any) Style {
		calls = append(calls, [2]int{row, col})
		return CannedStyle(StyleBorder)
	}})

	id := s.style(1, 0, "A", false)
	assert.Equal(t, 24, id)
	assert.Equal(t, CellStyleRequest{FontBold: true, Border: true}, s.registry.xfs[0].Request)

	assert.Equal(t, 25, s.style(2, 0, "x", false))
	assert.Equal(t, CellStyleRequest{Border: true}, s.registry.xfs[1].Request)
	assert.Equal(t, [][2]int{{1, 1}, {2, 1}}, calls)
}

func TestHeaderBoldOffUnderResolver(t *testing.T) {
	bold := false
	s := newRenderer(t, []string{"a"}, Config{BoldHeaderRow: &bold, StyleResolver: func(int, int, any) Style {
		return CannedStyle(StyleBorder)
	}})

	assert.Equal(t, 24, s.style(1, 0, "A", false))
	assert.Equal(t, CellStyleRequest{Border: true}, s.registry.xfs[0].Request)
}

func TestResolverResults(t *testing.T) {
	results := map[int]Style{
		2: NoStyle(),
		3: CannedStyle(StyleWrapBold),
		4: CustomStyle(CellStyleRequest{FontColor: "#00ff00", Alignment: AlignRight}),
		5: CustomStyle(CellStyleRequest{BgColor: "nope"}),
	}
	s := newRenderer(t, []string{"a"}, Config{WrapAllCells: true, StyleResolver: func(row, _ int, _ any) Style {
		return results[row]
	}})

	s.style(2, 0, "x", false)
	s.style(3, 0, "x", false)
	s.style(4, 0, "x", true)
	s.style(5, 0, "x", false)

	require.Len(t, s.registry.xfs, 4)
	assert.Equal(t, CellStyleRequest{WrapText: true}, s.registry.xfs[0].Request)
	assert.Equal(t, CellStyleRequest{FontBold: true, WrapText: true}, s.registry.xfs[1].Request)
	assert.Equal(t, CellStyleRequest{FontColor: "FF00FF00", Alignment: AlignRight, QuotePrefix: true}, s.registry.xfs[2].Request)
	assert.Equal(t, CellStyleRequest{}, s.registry.xfs[3].Request)
}

func TestColumns(t *testing.T) {
	s := newRenderer(t, nil, Config{})
	assert.Equal(t, "", s.Columns(nil))

	s = newRenderer(t, []string{"id", "notes"}, Config{ColumnWidths: map[string]float64{"notes": 10}})
	rows := []NormalizedRow{{"0123456789", "0123456789"}}
	assert.Equal(t,
		`<cols><col min="1" max="1" width="13.5" customWidth="1"/><col min="2" max="2" width="13.5" customWidth="1"/></cols>`,
		s.Columns(rows))
}
