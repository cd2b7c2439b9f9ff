package logger

import "strings"

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// normalizeLevel lowercases and trims a configured level, defaulting to info.
func normalizeLevel(s string) string {
	switch l := strings.ToLower(strings.TrimSpace(s)); l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return l
	default:
		return InfoLevel
	}
}
