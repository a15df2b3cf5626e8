package xlsxgen

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// baselineCounts are the count attributes of the baseline style sheet.
type baselineCounts struct {
	XMLName xml.Name `xml:"styleSheet"`
	Fonts   struct {
		Count int `xml:"count,attr"`
	} `xml:"fonts"`
	Fills struct {
		Count int `xml:"count,attr"`
	} `xml:"fills"`
	CellXfs struct {
		Count int `xml:"count,attr"`
	} `xml:"cellXfs"`
}

type xfEntry struct {
	ID       int
	Request  CellStyleRequest
	FontID   int
	FillID   int
	BorderID int
}

type fontKey struct {
	Kind  FontKind
	Color string
}

type fontEntry struct {
	ID int
	fontKey
}

type fillEntry struct {
	ID    int
	Color string
}

// table is an append-only id counter seeded from a baseline count.
type table struct {
	started  bool
	baseline int
	next     int
}

func (t *table) start(baseline func() int) {
	if t.started {
		return
	}
	t.started = true
	t.baseline = baseline()
	t.next = t.baseline
}

func (t *table) issue() int {
	id := t.next
	t.next++
	return id
}

// StyleFragments are the XML fragments of the newly registered style entries.
type StyleFragments struct {
	CellFormats string
	Fonts       string
	Fills       string
}

// StyleRegistry deduplicates cell formats, fonts and fills on top of a
// baseline style sheet. It belongs to a single conversion.
type StyleRegistry struct {
	template string
	log      logrus.FieldLogger

	counts *baselineCounts

	xfTable   table
	fontTable table
	fillTable table

	xfs     []*xfEntry
	xfIndex map[CellStyleRequest]int

	fonts     []fontEntry
	fontIndex map[fontKey]int

	fills     []fillEntry
	fillIndex map[string]int
}

// NewStyleRegistry creates an empty registry over the styles template.
func NewStyleRegistry(stylesTemplate string, log logrus.FieldLogger) *StyleRegistry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StyleRegistry{
		template:  stylesTemplate,
		log:       log,
		xfIndex:   map[CellStyleRequest]int{},
		fontIndex: map[fontKey]int{},
		fillIndex: map[string]int{},
	}
}

// baseline parses the template counts once.
func (r *StyleRegistry) baseline() *baselineCounts {
	if r.counts != nil {
		return r.counts
	}
	r.counts = &baselineCounts{}
	if err := xml.Unmarshal([]byte(r.template), r.counts); err != nil {
		r.log.Warnf("Failed to read style counts from the baseline template: %s", err)
		r.counts = &baselineCounts{}
	}
	return r.counts
}

// RegisterCellFormat returns the cellXfs id for req, appending a new entry the
// first time req is seen.
func (r *StyleRegistry) RegisterCellFormat(req CellStyleRequest) int {
	r.xfTable.start(func() int { return r.baseline().CellXfs.Count })
	if id, ok := r.xfIndex[req]; ok {
		return id
	}
	e := &xfEntry{ID: r.xfTable.issue(), Request: req, FontID: baselineFontID[req.fontKind()]}
	if req.Border {
		e.BorderID = 1
	}
	r.xfs = append(r.xfs, e)
	r.xfIndex[req] = e.ID
	r.log.Debugf("Registered cell format %d: %s", e.ID, req)
	return e.ID
}

// RegisterFont returns the font id for kind and color.
func (r *StyleRegistry) RegisterFont(kind FontKind, color string) int {
	r.fontTable.start(func() int { return r.baseline().Fonts.Count })
	key := fontKey{Kind: kind, Color: color}
	if id, ok := r.fontIndex[key]; ok {
		return id
	}
	e := fontEntry{ID: r.fontTable.issue(), fontKey: key}
	r.fonts = append(r.fonts, e)
	r.fontIndex[key] = e.ID
	return e.ID
}

// RegisterFill returns the fill id for a solid fill of color.
func (r *StyleRegistry) RegisterFill(color string) int {
	r.fillTable.start(func() int { return r.baseline().Fills.Count })
	if id, ok := r.fillIndex[color]; ok {
		return id
	}
	e := fillEntry{ID: r.fillTable.issue(), Color: color}
	r.fills = append(r.fills, e)
	r.fillIndex[color] = e.ID
	return e.ID
}

// RenderNewEntries renders the appended entries. Fonts and fills needed by
// colored cell formats are registered here.
func (r *StyleRegistry) RenderNewEntries() StyleFragments {
	for _, xf := range r.xfs {
		if xf.Request.FontColor != "" {
			xf.FontID = r.RegisterFont(xf.Request.fontKind(), xf.Request.FontColor)
		}
		if xf.Request.BgColor != "" {
			xf.FillID = r.RegisterFill(xf.Request.BgColor)
		}
	}

	var xfs, fonts, fills strings.Builder
	for _, xf := range r.xfs {
		xfs.WriteString(Build(xfNode(xf)))
	}
	for _, f := range r.fonts {
		fonts.WriteString(Build(fontNode(f)))
	}
	for _, f := range r.fills {
		fills.WriteString(Build(fillNode(f)))
	}
	return StyleFragments{CellFormats: xfs.String(), Fonts: fonts.String(), Fills: fills.String()}
}

func itoa(i int) string { return strconv.Itoa(i) }

func xfNode(xf *xfEntry) Node {
	n := Node{
		Name: "xf",
		Attrs: []Attr{
			{"numFmtId", "0"},
			{"fontId", itoa(xf.FontID)},
			{"fillId", itoa(xf.FillID)},
			{"borderId", itoa(xf.BorderID)},
			{"applyFont", "1"},
			{"applyFill", "1"},
			{"applyBorder", "1"},
			{"xfId", "0"},
		},
	}
	req := xf.Request
	if req.Alignment != AlignNone || req.WrapText {
		n.Attrs = append(n.Attrs, Attr{"applyAlignment", "1"})
		align := Node{Name: "alignment"}
		if req.Alignment != AlignNone {
			align.Attrs = append(align.Attrs, Attr{"horizontal", string(req.Alignment)})
		}
		if req.WrapText {
			align.Attrs = append(align.Attrs, Attr{"wrapText", "1"})
		}
		n.Children = []Node{align}
	}
	if req.QuotePrefix {
		n.Attrs = append(n.Attrs, Attr{"quotePrefix", "1"})
	}
	return n
}

func fontNode(f fontEntry) Node {
	children := []Node{
		{Name: "sz", Attrs: []Attr{{"val", "11"}}},
		{Name: "name", Attrs: []Attr{{"val", "Calibri"}}},
	}
	switch f.Kind {
	case FontBold:
		children = append(children, Node{Name: "b"})
	case FontUnderlined:
		children = append(children, Node{Name: "u"})
	case FontItalic:
		children = append(children, Node{Name: "i"})
	}
	children = append(children, Node{Name: "color", Attrs: []Attr{{"rgb", f.Color}}})
	return Node{Name: "font", Children: children}
}

func fillNode(f fillEntry) Node {
	return Node{Name: "fill", Children: []Node{{
		Name:  "patternFill",
		Attrs: []Attr{{"patternType", "solid"}},
		Children: []Node{
			{Name: "fgColor", Attrs: []Attr{{"rgb", f.Color}}},
			{Name: "bgColor", Attrs: []Attr{{"indexed", "64"}}},
		},
	}}}
}

// Counts returns the current size of the cellXfs, fonts and fills tables.
func (r *StyleRegistry) Counts() (xfs, fonts, fills int) {
	b := r.baseline()
	xfs, fonts, fills = b.CellXfs.Count, b.Fonts.Count, b.Fills.Count
	if r.xfTable.started {
		xfs = r.xfTable.next
	}
	if r.fontTable.started {
		fonts = r.fontTable.next
	}
	if r.fillTable.started {
		fills = r.fillTable.next
	}
	return
}

// Apply splices the new entries into the styles template and updates the
// count attributes of the touched tables.
func (r *StyleRegistry) Apply() string {
	frag := r.RenderNewEntries()
	b := r.baseline()
	xfs, fonts, fills := r.Counts()

	out := r.template
	out = strings.Replace(out, "{xf}", frag.CellFormats, 1)
	out = strings.Replace(out, "{font}", frag.Fonts, 1)
	out = strings.Replace(out, "{fill}", frag.Fills, 1)
	out = recount(out, "cellXfs", b.CellXfs.Count, xfs)
	out = recount(out, "fonts", b.Fonts.Count, fonts)
	out = recount(out, "fills", b.Fills.Count, fills)
	return out
}

func recount(doc, element string, from, to int) string {
	if from == to {
		return doc
	}
	return strings.Replace(doc,
		fmt.Sprintf(`<%s count="%d"`, element, from),
		fmt.Sprintf(`<%s count="%d"`, element, to), 1)
}
