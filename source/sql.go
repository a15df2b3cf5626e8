package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aerissecure/xlsxgen"
)

// ErrUnsupportedDriver is returned by Open for URLs it has no driver for.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Open connects to sqlite://path or postgres://... URLs.
func Open(url string) (*sql.DB, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, url)
	}
	switch scheme {
	case "sqlite", "sqlite3":
		db, err := sql.Open("sqlite3", rest)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres", "postgresql":
		return sql.Open("postgres", url)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, scheme)
}

// ReadSQL runs query and returns the result columns, in select order, and one
// record per row. NULL becomes nil.
func ReadSQL(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, []xlsxgen.Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var records []xlsxgen.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		rec := make(xlsxgen.Record, len(columns))
		for i, c := range columns {
			rec[c] = flatten(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, records, nil
}
