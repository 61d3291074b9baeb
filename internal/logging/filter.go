// Package logging provides logging utilities including sensitive data filtering.
// This package contains hooks and utilities for zerolog that keep org session
// ids and access tokens out of the console and the log file.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match the credential shapes the deploy status sources handle.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Salesforce session ids / access tokens (00D<org id>!<token>)
	regexp.MustCompile(`00D[a-zA-Z0-9]{12,15}![a-zA-Z0-9._]{20,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._!-]{20,}`),

	// Authorization headers with tokens
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9._!-]{20,}["']?`),

	// access_token / refresh_token / sessionId pairs as emitted in sf CLI JSON
	regexp.MustCompile(`(?i)"?(access_?token|refresh_?token|session_?id)"?\s*[:=]\s*"?[^\s",}]{8,}"?`),

	// Generic secret patterns (secret, password, client_secret with values)
	regexp.MustCompile(`(?i)(secret|password|passwd|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames contains field names whose values are always redacted.
// Matching is case-insensitive and by substring.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"access_token",
	"accesstoken",
	"refresh_token",
	"refreshtoken",
	"session_id",
	"sessionid",
	"authorization",
	"bearer",
	"password",
	"secret",
	"sf_access_token",
}

// SensitiveDataHook is a zerolog hook that flags log entries whose message
// matches a sensitive pattern.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
// zerolog does not allow rewriting the message from a hook, so the entry is
// only marked; actual redaction happens in FilteringWriter and SafeValue.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with [REDACTED].
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName checks if a field name indicates sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns [REDACTED] for sensitive field names and the filtered
// value otherwise.
//
//	logger.Debug().Str("url", logging.SafeValue("url", u)).Msg("requesting deploy status")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// Log file writers are wrapped with it so tokens never reach disk.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
// It reports the original length so callers never see a short write.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}
