// Package source reads records from JSON, YAML and SQL databases.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aerissecure/xlsxgen"
)

// ErrUnsupportedFormat is returned by ReadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ReadJSON decodes a JSON array of objects. Numbers are kept as json.Number so
// "1.50" stays "1.50" in the sheet.
func ReadJSON(r io.Reader) ([]xlsxgen.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []xlsxgen.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode json records: %w", err)
	}
	Flatten(records)
	return records, nil
}

// ReadYAML decodes a YAML sequence of mappings.
func ReadYAML(r io.Reader) ([]xlsxgen.Record, error) {
	var records []xlsxgen.Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml records: %w", err)
	}
	Flatten(records)
	return records, nil
}

// ReadFile reads records from a .json, .yaml or .yml file.
func ReadFile(path string) ([]xlsxgen.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(bytes.NewReader(b))
	case ".yaml", ".yml":
		return ReadYAML(bytes.NewReader(b))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Flatten replaces record values a sheet cell cannot hold, such as nested
// objects and lists, with their text form. Records are changed in place.
func Flatten(records []xlsxgen.Record) {
	for _, rec := range records {
		for k, v := range rec {
			rec[k] = flatten(v)
		}
	}
}

// flatten turns values a sheet cell cannot hold into text.
func flatten(v any) any {
	switch x := v.(type) {
	case nil, string, int, int64, uint64, float64, json.Number:
		return v
	case []byte:
		return string(x)
	case bool:
		return fmt.Sprint(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
