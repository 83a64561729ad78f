// Package logfields defines canonical slog attribute helpers so field names
// stay consistent across packages.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRecordID    = "record_id"
	KeyAlertID     = "alert_id"
	KeyField       = "field"
	KeyQuality     = "quality"
	KeyScore       = "score"
	KeyPeriod      = "period"
	KeySeverity    = "severity"
	KeyDurationMS  = "duration_ms"
	KeyMethod      = "method"
	KeyPath        = "path"
	KeyStatus      = "status"
	KeyUserAgent   = "user_agent"
	KeyRemoteAddr  = "remote_addr"
	KeySubject     = "subject"
	KeyStoreLength = "store_length"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RecordID(id uint64) slog.Attr      { return slog.Uint64(KeyRecordID, id) }
func AlertID(id string) slog.Attr       { return slog.String(KeyAlertID, id) }
func Field(name string) slog.Attr       { return slog.String(KeyField, name) }
func Quality(q string) slog.Attr        { return slog.String(KeyQuality, q) }
func Score(s float64) slog.Attr         { return slog.Float64(KeyScore, s) }
func Period(p string) slog.Attr         { return slog.String(KeyPeriod, p) }
func Severity(s string) slog.Attr       { return slog.String(KeySeverity, s) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr         { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr         { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr     { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr  { return slog.String(KeyRemoteAddr, addr) }
func Subject(s string) slog.Attr        { return slog.String(KeySubject, s) }
func StoreLength(n int) slog.Attr       { return slog.Int(KeyStoreLength, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
