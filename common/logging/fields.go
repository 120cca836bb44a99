package logging

import "log/slog"

// Common field names for consistent logging across the oracle service and CLI.
const (
	FieldService    = "service"
	FieldShipmentID = "shipment_id"
	FieldBackend    = "backend"
	FieldModel      = "model"
	FieldConfidence = "confidence"
	FieldDigest     = "digest"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// ShipmentID returns a slog attribute for the shipment identifier.
func ShipmentID(id string) slog.Attr {
	return slog.String(FieldShipmentID, id)
}

// Backend returns a slog attribute for the LLM backend name.
func Backend(name string) slog.Attr {
	return slog.String(FieldBackend, name)
}

// Model returns a slog attribute for the LLM model identifier.
func Model(name string) slog.Attr {
	return slog.String(FieldModel, name)
}

// Confidence returns a slog attribute for a report confidence score.
func Confidence(score int) slog.Attr {
	return slog.Int(FieldConfidence, score)
}

// Digest returns a slog attribute for a transaction digest.
func Digest(digest string) slog.Attr {
	return slog.String(FieldDigest, digest)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
