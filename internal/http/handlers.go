package http

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"custos/internal/core"
	"custos/internal/log"
)

// pageData feeds the dashboard template. SummaryJSON is template.JS so it
// lands verbatim inside the embedded JSON script tag.
type pageData struct {
	Records      []core.Record
	Summary      core.Summary
	SummaryJSON  template.JS
	Filter       core.Filter
	FromValue    string
	Clients      []string
	Categories   []string
	Statuses     []string
	Methods      []string
	Message      string
	ErrorMessage string
	Today        string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	table, loadErr := s.tracker.Load(r.Context())
	filter := filterFromQuery(r)
	records := filter.Apply(table.Records)
	summary := core.Summarize(records)

	data := pageData{
		Records:      records,
		Summary:      summary,
		SummaryJSON:  template.JS(summaryJSONString(summary)),
		Filter:       filter,
		FromValue:    r.URL.Query().Get("from"),
		Clients:      table.Clients(),
		Categories:   core.Categories,
		Statuses:     core.PaymentStatuses,
		Methods:      core.PaymentMethods,
		Message:      r.URL.Query().Get("msg"),
		ErrorMessage: r.URL.Query().Get("err"),
		Today:        s.now().Format("2006-01-02"),
	}
	if loadErr != nil {
		data.ErrorMessage = "Erro ao carregar dados: " + loadErr.Error()
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Rendering dashboard failed", log.FieldError, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	res := s.tracker.Reconcile(r.Context())
	w.Header().Set("Content-Type", "application/json")
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadGateway
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"ok":       res.OK,
		"message":  res.Message,
		"restored": res.Restored,
	})
}

// filterFromQuery reads the filter criteria from the query string. Empty
// values mean "all". The from parameter accepts the sheet's DD/MM/YYYY
// form and the HTML date input's YYYY-MM-DD form.
func filterFromQuery(r *http.Request) core.Filter {
	q := r.URL.Query()
	return core.Filter{
		Client:   q.Get("client"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		From:     parseDateParam(q.Get("from")),
	}
}

func parseDateParam(s string) core.Date {
	if s == "" {
		return core.Date{}
	}
	if d := core.ParseDate(s); !d.IsNull() {
		return d
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return core.Date{Time: t}
	}
	return core.Date{}
}
