package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"custos/internal/log"
	"custos/internal/services"
	"custos/internal/sheets/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	loader := services.NewLoader(store, time.Minute, logger)
	writer := services.NewWriter(store, loader, logger)
	reconciler := services.NewReconciler(store, store, logger)
	tracker := services.NewTracker(loader, writer, reconciler)

	s := NewServer(":0", tracker, logger)
	if res := tracker.Reconcile(context.Background()); !res.OK {
		t.Fatalf("reconcile: %+v", res)
	}
	return s, store
}

func postRecord(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func validForm() url.Values {
	return url.Values{
		"date":        {"2025-07-15"},
		"client":      {"Reforma Apto 101"},
		"category":    {"Ferramentas"},
		"description": {"Furadeira"},
		"quantity":    {"2"},
		"unit_price":  {"150.50"},
		"discount":    {"10"},
		"status":      {"Pago"},
		"method":      {"PIX"},
		"notes":       {""},
	}
}

func TestCreateRecordAndSummary(t *testing.T) {
	s, store := newTestServer(t)

	if rr := postRecord(t, s, validForm()); rr.Code != http.StatusSeeOther {
		t.Fatalf("create: status %d, body %s", rr.Code, rr.Body.String())
	}

	rows, _ := store.Rows(context.Background())
	if len(rows) != 2 {
		t.Fatalf("store rows: got %d", len(rows))
	}

	pending := validForm()
	pending.Set("client", "Obra B")
	pending.Set("status", "Pendente")
	pending.Set("unit_price", "25")
	pending.Set("discount", "0")
	if rr := postRecord(t, s, pending); rr.Code != http.StatusSeeOther {
		t.Fatalf("create second: status %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("summary: status %d", rr.Code)
	}

	var got struct {
		Count        int    `json:"count"`
		Total        string `json:"total"`
		PendingCount int    `json:"pending_count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if got.Count != 2 || got.PendingCount != 1 {
		t.Fatalf("summary: %+v", got)
	}
	// 2*150.50*0.9 + 2*25 = 270.90 + 50.00
	if got.Total != "320.90" {
		t.Fatalf("total: %q", got.Total)
	}
}

func TestCreateRecordValidation(t *testing.T) {
	s, _ := newTestServer(t)

	missingClient := validForm()
	missingClient.Set("client", "")
	rr := postRecord(t, s, missingClient)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Cliente") {
		t.Fatalf("body: %s", rr.Body.String())
	}

	badDiscount := validForm()
	badDiscount.Set("discount", "80")
	if rr := postRecord(t, s, badDiscount); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("discount status: %d", rr.Code)
	}
}

func TestAPIRecordsFiltered(t *testing.T) {
	s, _ := newTestServer(t)
	_ = postRecord(t, s, validForm())

	other := validForm()
	other.Set("client", "Obra B")
	_ = postRecord(t, s, other)

	req := httptest.NewRequest(http.MethodGet, "/api/records?client=Obra+B", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)

	var got struct {
		Records []struct {
			Client string `json:"client"`
			Total  string `json:"total"`
		} `json:"records"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].Client != "Obra B" {
		t.Fatalf("filtered records: %+v", got.Records)
	}
}

func TestExportCSV(t *testing.T) {
	s, _ := newTestServer(t)
	_ = postRecord(t, s, validForm())

	req := httptest.NewRequest(http.MethodGet, "/export/csv", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "custos_artico_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("content disposition: %q", cd)
	}
	body := rr.Body.Bytes()
	if len(body) < 3 || body[0] != 0xEF || body[1] != 0xBB || body[2] != 0xBF {
		t.Fatalf("missing BOM")
	}
	if !strings.Contains(string(body), "Reforma Apto 101") {
		t.Fatalf("csv missing record: %s", body)
	}
}

func TestReconcileEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/reconcile", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d, body %s", rr.Code, rr.Body.String())
	}
	var got struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.OK {
		t.Fatalf("expected ok")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/reconcile", nil)
	getRR := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(getRR, getReq)
	if getRR.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET reconcile: %d", getRR.Code)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
}
