// Package http serves the dashboard: the server-rendered shell, the form
// that records new expenses, the filtered JSON APIs feeding charts, and
// the export downloads.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"custos/internal/core"
	"custos/internal/log"
	"custos/internal/services"
	appweb "custos/web"
)

type Server struct {
	http.Server
	templates *template.Template
	tracker   *services.Tracker
	logger    *log.Logger

	// now is the clock used for export filenames and report headers.
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, tracker *services.Tracker, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		tracker: tracker,
		logger:  logger.WithComponent(log.ComponentHTTP),
		now:     time.Now,
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.accessLog(mux),
	}

	t, err := template.New("").Funcs(template.FuncMap{
		"money": core.FormatMoney,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/records", s.handleCreateRecord)
	mux.HandleFunc("/api/records", s.handleAPIRecords)
	mux.HandleFunc("/api/summary", s.handleAPISummary)
	mux.HandleFunc("/export/csv", s.handleExportCSV)
	mux.HandleFunc("/export/xlsx", s.handleExportXLSX)
	mux.HandleFunc("/export/report", s.handleExportReport)
	mux.HandleFunc("/reconcile", s.handleReconcile)
	mux.HandleFunc("/healthz", s.handleHealth)

	return s
}

// accessLog wraps the mux with request logging.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}
