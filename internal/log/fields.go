package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldKind      = "report_kind"
	FieldFormat    = "format"
	FieldFrom      = "date_from"
	FieldTo        = "date_to"
	FieldDocument  = "document"
	FieldBytes     = "bytes"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)

// Operations defines standard operation names
const (
	OpRender   = "render"
	OpBundle   = "bundle"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
