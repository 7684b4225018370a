package utils

import "strings"

// OrDash returns "-" for blank strings, used when rendering documents.
func OrDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
