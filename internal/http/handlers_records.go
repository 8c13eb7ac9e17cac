package http

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"custos/internal/core"
	"custos/internal/log"
)

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", log.FieldError, err)
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	date := parseDateParam(strings.TrimSpace(r.Form.Get("date")))
	client := strings.TrimSpace(r.Form.Get("client"))
	description := strings.TrimSpace(r.Form.Get("description"))
	if client == "" || description == "" {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Preencha pelo menos Cliente e Descrição!")
		return
	}

	quantity, ok := core.ParseCell(r.Form.Get("quantity"))
	if !ok {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Quantidade inválida")
		return
	}
	unitPrice, ok := core.ParseCell(r.Form.Get("unit_price"))
	if !ok {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Preço unitário inválido")
		return
	}
	discount, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("discount")))
	if err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Desconto inválido")
		return
	}

	rec := core.NewRecord(
		date,
		client,
		r.Form.Get("category"),
		description,
		quantity,
		unitPrice,
		discount,
		r.Form.Get("status"),
		r.Form.Get("method"),
		r.Form.Get("notes"),
	)
	if err := rec.Validate(); err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Dados inválidos: "+err.Error())
		return
	}

	if err := s.tracker.Save(r.Context(), rec); err != nil {
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao salvar registro")
		return
	}

	http.Redirect(w, r, "/?msg="+templateQueryEscape("Registro salvo com sucesso!"), http.StatusSeeOther)
}

func writeErrorFragment(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func templateQueryEscape(s string) string {
	return strings.ReplaceAll(template.URLQueryEscaper(s), "+", "%20")
}

// JSON shapes for the API endpoints. Decimal columns are rendered as
// plain decimal strings to keep exact values.
type (
	recordJSON struct {
		Date        string `json:"date"` // DD/MM/YYYY, empty when null
		Client      string `json:"client"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Quantity    string `json:"quantity"`
		UnitPrice   string `json:"unit_price"`
		Subtotal    string `json:"subtotal"`
		Discount    int    `json:"discount"`
		Total       string `json:"total"`
		Status      string `json:"status"`
		Method      string `json:"method"`
		Notes       string `json:"notes"`
	}

	groupJSON struct {
		Key   string `json:"key"`
		Total string `json:"total"`
	}

	monthJSON struct {
		Label string `json:"label"`
		Total string `json:"total"`
	}

	summaryJSON struct {
		Count        int         `json:"count"`
		Total        string      `json:"total"`
		Mean         string      `json:"mean"`
		PendingCount int         `json:"pending_count"`
		ByCategory   []groupJSON `json:"by_category"`
		ByStatus     []groupJSON `json:"by_status"`
		ByMonth      []monthJSON `json:"by_month"`
	}
)

func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	table, loadErr := s.tracker.Load(r.Context())
	records := filterFromQuery(r).Apply(table.Records)

	out := make([]recordJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, recordJSON{
			Date:        rec.Date.Cell(),
			Client:      rec.Client,
			Category:    rec.Category,
			Description: rec.Description,
			Quantity:    rec.Quantity.String(),
			UnitPrice:   rec.UnitPrice.String(),
			Subtotal:    rec.Subtotal.String(),
			Discount:    rec.Discount,
			Total:       rec.Total.String(),
			Status:      rec.Status,
			Method:      rec.Method,
			Notes:       rec.Notes,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if loadErr != nil {
		w.Header().Set("X-Load-Degraded", "true")
	}
	json.NewEncoder(w).Encode(map[string]any{
		"records":       out,
		"coerced_cells": table.CoercedCells,
	})
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	table, loadErr := s.tracker.Load(r.Context())
	records := filterFromQuery(r).Apply(table.Records)

	w.Header().Set("Content-Type", "application/json")
	if loadErr != nil {
		w.Header().Set("X-Load-Degraded", "true")
	}
	json.NewEncoder(w).Encode(buildSummaryJSON(core.Summarize(records)))
}

func buildSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		Count:        s.Count,
		Total:        s.Total.StringFixed(2),
		Mean:         s.Mean.StringFixed(2),
		PendingCount: s.PendingCount,
		ByCategory:   []groupJSON{},
		ByStatus:     []groupJSON{},
		ByMonth:      []monthJSON{},
	}
	for _, g := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, groupJSON{Key: g.Key, Total: g.Total.StringFixed(2)})
	}
	for _, g := range s.ByStatus {
		out.ByStatus = append(out.ByStatus, groupJSON{Key: g.Key, Total: g.Total.StringFixed(2)})
	}
	for _, m := range s.ByMonth {
		out.ByMonth = append(out.ByMonth, monthJSON{Label: m.Label(), Total: m.Total.StringFixed(2)})
	}
	return out
}

// summaryJSONString renders the summary as JSON for embedding in the
// dashboard page, where the chart script reads it.
func summaryJSONString(s core.Summary) string {
	b, err := json.Marshal(buildSummaryJSON(s))
	if err != nil {
		return "{}"
	}
	return string(b)
}
