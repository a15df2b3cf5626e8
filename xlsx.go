package xlsxgen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrConversion is returned, wrapped, when a workbook could not be produced.
var ErrConversion = errors.New("xlsxgen: conversion failed")

var partNames = []string{
	PartRels,
	PartWorkbookRels,
	PartWorkbook,
	PartStyles,
	PartSheet,
	PartContentTypes,
}

// Converter turns records into xlsx documents. It keeps no state between
// calls and may be shared.
type Converter struct {
	templates Templates
	packager  Packager
	log       logrus.FieldLogger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTemplates replaces the embedded baseline templates.
func WithTemplates(t Templates) Option {
	return func(c *Converter) { c.templates = t }
}

// WithPackager replaces the ZIP packager.
func WithPackager(p Packager) Option {
	return func(c *Converter) { c.packager = p }
}

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) { c.log = l }
}

// NewConverter returns a Converter using the embedded templates and ZIP
// packaging unless overridden.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		templates: EmbeddedTemplates{},
		packager:  ZipPackager{},
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create converts records with the default Converter.
func Create(ctx context.Context, records []Record, cfg Config) ([]byte, error) {
	return NewConverter().Create(ctx, records, cfg)
}

// Create renders records into a single worksheet workbook and packages it.
// Any failure is reported as ErrConversion; no partial document is returned.
func (c *Converter) Create(ctx context.Context, records []Record, cfg Config) ([]byte, error) {
	tree, err := c.Parts(records, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	doc, err := c.packager.Package(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	c.log.Debugf("Packaged workbook: %d records, %d bytes", len(records), len(doc))
	return doc, nil
}

// Parts renders the workbook parts without packaging them.
func (c *Converter) Parts(records []Record, cfg Config) (Tree, error) {
	columns := cfg.Columns
	if len(columns) == 0 {
		columns = DeriveColumns(records)
	}
	c.log.Debugf("Columns: %v", columns)
	rows := Normalize(records, columns)

	parts := make(map[string]string, len(partNames))
	for _, name := range partNames {
		t, err := c.templates.Template(name)
		if err != nil {
			return nil, err
		}
		parts[name] = t
	}

	registry := NewStyleRegistry(parts[PartStyles], c.log)
	sheet := &sheetRenderer{columns: columns, cfg: &cfg, registry: registry, log: c.log}

	ws := strings.Replace(parts[PartSheet], placeholderRows, sheet.Rows(rows), 1)
	parts[PartSheet] = strings.Replace(ws, placeholderCols, sheet.Columns(rows), 1)
	parts[PartStyles] = registry.Apply()

	xfs, fonts, fills := registry.Counts()
	c.log.Debugf("Style tables: %d cell formats, %d fonts, %d fills", xfs, fonts, fills)

	tree := Tree{}
	for name, data := range parts {
		tree.Put(name, data)
	}
	return tree, nil
}

// DeriveColumns collects the keys of all records. Each record's keys are
// sorted and a key not seen before is inserted at its position within that
// record, so the result depends on which record introduces a key first.
func DeriveColumns(records []Record) []string {
	var result []string
	seen := map[string]bool{}
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			if i > len(result) {
				i = len(result)
			}
			result = append(result, "")
			copy(result[i+1:], result[i:])
			result[i] = k
		}
	}
	return result
}

// Normalize projects records onto columns. Missing keys become nil.
func Normalize(records []Record, columns []string) []NormalizedRow {
	rows := make([]NormalizedRow, len(records))
	for i, rec := range records {
		row := make(NormalizedRow, len(columns))
		for j, key := range columns {
			row[j] = rec[key]
		}
		rows[i] = row
	}
	return rows
}
