// Package xlsxgen writes in-memory tables as single worksheet xlsx documents.
//
// Records are flat maps of strings and numbers. Each value is classified as
// text or number; strings that look like percentages, currency amounts,
// bracketed negatives or ISO dates are stored as numbers with a matching
// number format. Cell styles are deduplicated into the style sheet that ships
// with the package, and the resulting parts are zipped into an .xlsx file:
//
//	doc, err := xlsxgen.Create(ctx, []xlsxgen.Record{
//		{"name": "Al", "amt": "50%"},
//		{"name": "Bo", "amt": "(10)"},
//	}, xlsxgen.Config{})
package xlsxgen // import "github.com/aerissecure/xlsxgen"
