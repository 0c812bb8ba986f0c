package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldCategory   = "category"
	FieldMode       = "mode"
	FieldAmount     = "amount"
	FieldFile       = "file"
	FieldRows       = "rows"
	FieldEntries    = "entries"
	FieldDurationMs = "duration_ms"
	FieldAddr       = "addr"
)

// Component names.
const (
	ComponentApp    = "app"
	ComponentStore  = "store"
	ComponentImport = "import"
	ComponentDaemon = "daemon"
	ComponentWatch  = "watch"
	ComponentTUI    = "tui"
)

// Operation names.
const (
	OpSave    = "save"
	OpDelete  = "delete"
	OpToggle  = "toggle"
	OpTarget  = "target"
	OpImport  = "import"
	OpPoll    = "poll"
	OpStartup = "startup"
)
