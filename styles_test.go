package xlsxgen

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const miniStyles = `<styleSheet><fonts count="5">{font}</fonts><fills count="2">{fill}</fills><cellXfs count="24">{xf}</cellXfs></styleSheet>`

type StyleRegistrySuite struct {
	suite.Suite
	registry *StyleRegistry
	hook     *test.Hook
}

func (s *StyleRegistrySuite) SetupTest() {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s.hook = hook
	s.registry = NewStyleRegistry(miniStyles, log)
}

func (s *StyleRegistrySuite) TestSequentialIDsFromBaseline() {
	s.Equal(24, s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true}))
	s.Equal(25, s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true, Border: true}))
	s.Equal(26, s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true, Alignment: AlignLeft}))
}

func (s *StyleRegistrySuite) TestDeduplicates() {
	a := s.registry.RegisterCellFormat(CellStyleRequest{WrapText: true, QuotePrefix: true})
	s.registry.RegisterCellFormat(CellStyleRequest{Italic: true})
	b := s.registry.RegisterCellFormat(CellStyleRequest{WrapText: true, QuotePrefix: true})
	s.Equal(a, b)

	xfs, _, _ := s.registry.Counts()
	s.Equal(26, xfs)
}

func (s *StyleRegistrySuite) TestFontsAndFills() {
	s.Equal(5, s.registry.RegisterFont(FontBold, "FFFF0000"))
	s.Equal(6, s.registry.RegisterFont(FontNormal, "FFFF0000"))
	s.Equal(5, s.registry.RegisterFont(FontBold, "FFFF0000"))
	s.Equal(2, s.registry.RegisterFill("FF00FF00"))
	s.Equal(2, s.registry.RegisterFill("FF00FF00"))

	xfs, fonts, fills := s.registry.Counts()
	s.Equal(24, xfs)
	s.Equal(7, fonts)
	s.Equal(3, fills)
}

func (s *StyleRegistrySuite) TestRenderNewEntries() {
	s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true})
	s.registry.RegisterCellFormat(CellStyleRequest{Alignment: AlignLeft, WrapText: true, QuotePrefix: true})
	s.registry.RegisterCellFormat(CellStyleRequest{Border: true, Underline: true})

	frag := s.registry.RenderNewEntries()
	s.Equal(
		`<xf numFmtId="0" fontId="2" fillId="0" borderId="0" applyFont="1" applyFill="1" applyBorder="1" xfId="0"/>`+
			`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" applyFont="1" applyFill="1" applyBorder="1" xfId="0" applyAlignment="1" quotePrefix="1"><alignment horizontal="left" wrapText="1"/></xf>`+
			`<xf numFmtId="0" fontId="4" fillId="0" borderId="1" applyFont="1" applyFill="1" applyBorder="1" xfId="0"/>`,
		frag.CellFormats)
	s.Empty(frag.Fonts)
	s.Empty(frag.Fills)
}

func (s *StyleRegistrySuite) TestColoredFormatRegistersFontAndFill() {
	id := s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true, FontColor: "FFFF0000", BgColor: "FF00FF00"})
	s.Equal(24, id)

	frag := s.registry.RenderNewEntries()
	s.Equal(`<xf numFmtId="0" fontId="5" fillId="2" borderId="0" applyFont="1" applyFill="1" applyBorder="1" xfId="0"/>`, frag.CellFormats)
	s.Equal(`<font><sz val="11"/><name val="Calibri"/><b/><color rgb="FFFF0000"/></font>`, frag.Fonts)
	s.Equal(`<fill><patternFill patternType="solid"><fgColor rgb="FF00FF00"/><bgColor indexed="64"/></patternFill></fill>`, frag.Fills)
}

func (s *StyleRegistrySuite) TestApplyUpdatesCounts() {
	s.registry.RegisterCellFormat(CellStyleRequest{Italic: true, FontColor: "FF0000FF"})

	out := s.registry.Apply()
	s.Contains(out, `<cellXfs count="25">`)
	s.Contains(out, `<fonts count="6">`)
	s.Contains(out, `<fills count="2">`)
	s.NotContains(out, "{xf}")
	s.NotContains(out, "{font}")
	s.NotContains(out, "{fill}")
	s.Contains(out, `<font><sz val="11"/><name val="Calibri"/><i/><color rgb="FF0000FF"/></font></fonts>`)
}

func (s *StyleRegistrySuite) TestApplyWithoutEntries() {
	out := s.registry.Apply()
	s.Equal(`<styleSheet><fonts count="5"></fonts><fills count="2"></fills><cellXfs count="24"></cellXfs></styleSheet>`, out)
}

func (s *StyleRegistrySuite) TestLogsRegistrations() {
	s.registry.RegisterCellFormat(CellStyleRequest{FontBold: true})
	require.NotNil(s.T(), s.hook.LastEntry())
	s.Equal(logrus.DebugLevel, s.hook.LastEntry().Level)
}

func TestStyleRegistrySuite(t *testing.T) {
	suite.Run(t, new(StyleRegistrySuite))
}

func TestStyleRegistryBadTemplate(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := NewStyleRegistry("not a style sheet", log)

	assert.Equal(t, 0, r.RegisterCellFormat(CellStyleRequest{FontBold: true}))
	assert.Equal(t, 1, r.RegisterCellFormat(CellStyleRequest{Italic: true}))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestStyleRegistryEmbeddedBaseline(t *testing.T) {
	tmpl, err := EmbeddedTemplates{}.Template(PartStyles)
	require.NoError(t, err)

	r := NewStyleRegistry(tmpl, logrus.New())
	xfs, fonts, fills := r.Counts()
	assert.Equal(t, 24, xfs)
	assert.Equal(t, 5, fonts)
	assert.Equal(t, 2, fills)
}

func TestNormalizedRequest(t *testing.T) {
	req, problems := CellStyleRequest{FontColor: "#ff0000", BgColor: "80abcdef", Alignment: "middle"}.normalized()
	assert.Equal(t, "FFFF0000", req.FontColor)
	assert.Equal(t, "80ABCDEF", req.BgColor)
	assert.Equal(t, AlignNone, req.Alignment)
	assert.Len(t, problems, 1)

	req, problems = CellStyleRequest{FontColor: "red", Alignment: AlignCenter}.normalized()
	assert.Empty(t, req.FontColor)
	assert.Equal(t, AlignCenter, req.Alignment)
	assert.Len(t, problems, 1)
}

func TestCannedStyleClamp(t *testing.T) {
	assert.Equal(t, CellStyleRequest{FontBold: true}, cannedStyle(StyleBold))
	assert.Equal(t, CellStyleRequest{FontBold: true}, cannedStyle(-StyleBold))
	assert.Equal(t, CellStyleRequest{FontBold: true, WrapText: true}, cannedStyle(99))
}
