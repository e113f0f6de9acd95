package utils

import (
	"net/url"
	"strings"
)

// IsSafeRedirect reports whether raw is an absolute http(s) URL with a host.
// Stored redirect targets are checked with this every time they are used.
func IsSafeRedirect(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return u.Host != ""
}
