package utils

import "time"

const (
	layoutDateTime  = "2006-01-02 15:04"
	layoutFileStamp = "20060102_1504"
)

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" in its own location.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// FileStamp is the compact timestamp used in generated file names.
func FileStamp(t time.Time) string {
	return t.Format(layoutFileStamp)
}
