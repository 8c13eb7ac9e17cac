package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldBackend      = "backend"
	FieldClient       = "client"
	FieldCategory     = "category"
	FieldStatus       = "payment_status"
	FieldTotalCell    = "total"
	FieldRowCount     = "row_count"
	FieldCoercedCells = "coerced_cells"
	FieldRestoredRows = "restored_rows"
	FieldSheetName    = "sheet_name"
	FieldFilename     = "filename"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentReconciler = "reconciler"
	ComponentLoader     = "loader"
	ComponentWriter     = "writer"
	ComponentSheets     = "sheets"
	ComponentStorage    = "storage"
	ComponentReport     = "report"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpAppend    = "append"
	OpReconcile = "reconcile"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
