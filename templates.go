package xlsxgen

import (
	"embed"
	"fmt"
)

// Names of the workbook parts.
const (
	PartRels         = "_rels/.rels"
	PartWorkbookRels = "xl/_rels/workbook.xml.rels"
	PartWorkbook     = "xl/workbook.xml"
	PartStyles       = "xl/styles.xml"
	PartSheet        = "xl/worksheets/sheet1.xml"
	PartContentTypes = "[Content_Types].xml"
	placeholderRows  = "{placeholder}"
	placeholderCols  = "{columnConfig}"
)

// Templates looks up the baseline XML of a workbook part.
type Templates interface {
	Template(part string) (string, error)
}

//go:embed templates/*.xml
var templateFS embed.FS

var embeddedFiles = map[string]string{
	PartRels:         "templates/rels.xml",
	PartWorkbookRels: "templates/workbook_rels.xml",
	PartWorkbook:     "templates/workbook.xml",
	PartStyles:       "templates/styles.xml",
	PartSheet:        "templates/sheet1.xml",
	PartContentTypes: "templates/content_types.xml",
}

// EmbeddedTemplates serves the baseline parts compiled into the package.
type EmbeddedTemplates struct{}

func (EmbeddedTemplates) Template(part string) (string, error) {
	file, ok := embeddedFiles[part]
	if !ok {
		return "", fmt.Errorf("no template for part %q", part)
	}
	b, err := templateFS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", file, err)
	}
	return string(b), nil
}

// TemplateMap serves templates from memory, mostly for tests and callers that
// ship their own baseline.
type TemplateMap map[string]string

func (m TemplateMap) Template(part string) (string, error) {
	t, ok := m[part]
	if !ok {
		return "", fmt.Errorf("no template for part %q", part)
	}
	return t, nil
}
