package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *MastrenaError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *MastrenaError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Parameter validation errors

// Malformed reports a brewing parameter that was present but did not parse
// as a number.
func Malformed(field, raw string) *MastrenaError {
	return New(CategoryMalformed, SeverityWarning, "parameter is not a number").
		WithContext("field", field).
		WithContext("value", raw)
}

// OutOfRange reports a brewing parameter outside its accepted physical range.
// The offending value and the allowed bounds are carried as context so the
// HTTP adapter can surface them verbatim.
func OutOfRange(field string, value, min, max float64) *MastrenaError {
	return New(CategoryOutOfRange, SeverityWarning, "parameter outside accepted range").
		WithContext("field", field).
		WithContext("value", value).
		WithContext("min", min).
		WithContext("max", max)
}

// Storage errors

func StorageError(operation string, cause error) *MastrenaError {
	return Wrap(cause, CategoryStorage, SeverityFatal, "storage operation failed").
		WithContext("operation", operation)
}

// Notification errors

func NotifyError(target string, cause error) *MastrenaError {
	return WrapRetryable(cause, CategoryNotify, SeverityWarning, "alert delivery failed").
		WithContext("target", target)
}

func NetworkTimeout(url string, cause error) *MastrenaError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "network timeout").
		WithContext("url", url)
}

// Internal errors

func InternalError(message string, cause error) *MastrenaError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
