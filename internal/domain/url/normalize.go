// Package url provides URL helpers shared by the shield entry points.
package url

import (
	"strings"
)

// localSchemes are documents the shield never installs into.
var localSchemes = []string{"about:", "data:", "blob:", "file:"}

// Normalize adds an https:// prefix to host-like input such as
// "google-analytics.com/collect". Input that already has a scheme, or
// does not look like a URL, is returned trimmed but otherwise unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || HasScheme(input) {
		return input
	}
	if strings.HasPrefix(input, "//") {
		return "https:" + input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// HasScheme reports whether input starts with an http(s) or local scheme.
func HasScheme(input string) bool {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	return IsLocalScheme(lower)
}

// LooksLikeURL checks if the input appears to be a URL or a bare host.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if HasScheme(input) {
		return true
	}
	// Contains a dot and no spaces = likely a host
	return strings.Contains(input, ".") && !strings.ContainsAny(input, " \t\n")
}

// IsLocalScheme reports whether rawURL is an about:, data:, blob: or
// file: document.
func IsLocalScheme(rawURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, scheme := range localSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// Scheme returns the lower-cased scheme of rawURL without the colon, or
// "" when there is none.
func Scheme(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	i := strings.IndexByte(rawURL, ':')
	if i <= 0 {
		return ""
	}
	scheme := rawURL[:i]
	for _, r := range scheme {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlpha && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return ""
		}
	}
	return strings.ToLower(scheme)
}
