package http

import (
	"net/http"

	"custos/internal/log"
	"custos/internal/report"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	table, _ := s.tracker.Load(r.Context())
	records := filterFromQuery(r).Apply(table.Records)

	data, err := report.CSV(records)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		http.Error(w, "erro ao exportar CSV", http.StatusInternalServerError)
		return
	}
	serveDownload(w, data, report.CSVFilename(s.now()), "text/csv; charset=utf-8")
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	table, _ := s.tracker.Load(r.Context())
	records := filterFromQuery(r).Apply(table.Records)

	data, err := report.XLSX(records)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "XLSX export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		http.Error(w, "erro ao exportar planilha", http.StatusInternalServerError)
		return
	}
	serveDownload(w, data, report.XLSXFilename(s.now()),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	table, _ := s.tracker.Load(r.Context())
	records := filterFromQuery(r).Apply(table.Records)

	data := report.Text(records, s.now())
	serveDownload(w, data, report.TextFilename(s.now()), "text/plain; charset=utf-8")
}

func serveDownload(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
