// Package server exposes workbook conversion over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/aerissecure/xlsxgen"
	"github.com/aerissecure/xlsxgen/source"
)

const maxBodyBytes = 32 << 20

// ExportRequest is the body of POST /export.
type ExportRequest struct {
	Records    []xlsxgen.Record   `json:"records"`
	Columns    []string           `json:"columns"`
	BoldHeader *bool              `json:"boldHeader"`
	WrapAll    bool               `json:"wrapAll"`
	Widths     map[string]float64 `json:"widths"`
	Styles     xlsxgen.StyleRules `json:"styles"`
	Filename   string             `json:"filename"`
}

// Server serves the conversion endpoints.
type Server struct {
	conv   *xlsxgen.Converter
	log    logrus.FieldLogger
	router *mux.Router
}

// New builds a Server around conv.
func New(conv *xlsxgen.Converter, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{conv: conv, log: log, router: mux.NewRouter()}
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/export", s.handleExport).Methods(http.MethodPost)
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Infof("Listening on %s", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start).String(),
		}).Debug("Handled request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	var req ExportRequest
	if err := dec.Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %s", err), http.StatusBadRequest)
		return
	}
	source.Flatten(req.Records)

	columns := req.Columns
	if len(columns) == 0 {
		columns = xlsxgen.DeriveColumns(req.Records)
	}
	cfg := xlsxgen.Config{
		Columns:       columns,
		BoldHeaderRow: req.BoldHeader,
		WrapAllCells:  req.WrapAll,
		ColumnWidths:  req.Widths,
		StyleResolver: req.Styles.Resolver(columns),
	}

	doc, err := s.conv.Create(r.Context(), req.Records, cfg)
	if err != nil {
		s.log.Errorf("Export failed: %s", err)
		http.Error(w, "conversion failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxgen.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(req.Filename)))
	w.Write(doc)
}

// filename keeps the base name and forces the .xlsx extension.
func filename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "" || name == "." || name == "/" {
		name = "export"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}
