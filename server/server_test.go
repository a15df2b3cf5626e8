package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/xlsxgen"
)

func newTestServer(opts ...xlsxgen.Option) *httptest.Server {
	log, _ := test.NewNullLogger()
	conv := xlsxgen.NewConverter(append([]xlsxgen.Option{xlsxgen.WithLogger(log)}, opts...)...)
	return httptest.NewServer(New(conv, log).Handler())
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestExport(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	body := `{
		"records": [{"name": "Al", "amt": "50%", "qty": 1.50}, {"name": "Bo", "amt": "(10)"}],
		"columns": ["name", "amt", "qty"],
		"styles": [{"column": "name", "code": 2}],
		"widths": {"name": 30},
		"filename": "../q1 report"
	}`
	res, err := http.Post(ts.URL+"/export", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, xlsxgen.MimeType, res.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="q1 report.xlsx"`, res.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(res.Body)
	require.NoError(t, err)
	defer f.Close()

	raw := excelize.Options{RawCellValue: true}
	v, err := f.GetCellValue("Sheet1", "A1", raw)
	require.NoError(t, err)
	assert.Equal(t, "NAME", v)
	v, err = f.GetCellValue("Sheet1", "B3", raw)
	require.NoError(t, err)
	assert.Equal(t, "-10", v)
	v, err = f.GetCellValue("Sheet1", "C2", raw)
	require.NoError(t, err)
	assert.Equal(t, "1.50", v)
}

func TestExportNestedValues(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Post(ts.URL+"/export", "application/json",
		strings.NewReader(`{"records": [{"meta": {"x": 1}, "tags": ["a", "b"]}]}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	f, err := excelize.OpenReader(res.Body)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, v)
	v, err = f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)
}

func TestExportBadJSON(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Post(ts.URL+"/export", "application/json", strings.NewReader(`{"records": [`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

type brokenPackager struct{}

func (brokenPackager) Package(context.Context, xlsxgen.Tree) ([]byte, error) {
	return nil, errors.New("no space left")
}

func TestExportFailure(t *testing.T) {
	ts := newTestServer(xlsxgen.WithPackager(brokenPackager{}))
	defer ts.Close()

	res, err := http.Post(ts.URL+"/export", "application/json", bytes.NewBufferString(`{"records": [{"a": 1}]}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestExportMethod(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/export")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "export.xlsx", filename(""))
	assert.Equal(t, "report.xlsx", filename("report"))
	assert.Equal(t, "Report.XLSX", filename("Report.XLSX"))
	assert.Equal(t, "evil.xlsx", filename(`..\..\evil`))
}
