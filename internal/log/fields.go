package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldTipID      = "tip_id"
	FieldModel      = "model"
	FieldSource     = "source"
	FieldReason     = "reason"
	FieldCached     = "cached"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentExpand    = "expand"
	ComponentProvider  = "provider"
	ComponentCache     = "cache"
	ComponentStorage   = "storage"
	ComponentClient    = "client"
	ComponentRateLimit = "rate_limit"
)
