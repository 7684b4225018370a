package utils

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the JSON process logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEvent writes a module/action line carrying the request id.
// Keep payloads out of attrs; log ids and counts only.
func LogEvent(requestID, module, action, message string, attrs ...any) {
	logEvent(slog.LevelInfo, requestID, module, action, message, attrs...)
}

// DebugEvent is LogEvent at debug level, used for "request received" lines.
func DebugEvent(requestID, module, action, message string, attrs ...any) {
	logEvent(slog.LevelDebug, requestID, module, action, message, attrs...)
}

func logEvent(level slog.Level, requestID, module, action, message string, attrs ...any) {
	args := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	}, attrs...)
	slog.Default().Log(context.Background(), level, message, args...)
}
