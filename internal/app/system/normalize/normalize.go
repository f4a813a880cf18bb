// Package normalize holds small string normalizers shared by the domain
// models and services. Each function is total: any input produces a usable
// value.
package normalize

import "strings"

// Slug converts free text into a URL-safe identifier: lowercase, runs of
// anything outside [a-z0-9] collapsed to single hyphens, no leading or
// trailing hyphens. Slug is idempotent.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // swallows leading separators
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username lowercases and trims a login username.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Recognized theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme coerces a persisted theme preference to "light" or "dark".
// Anything that is not exactly "dark" is "light".
func Theme(s string) string {
	if s == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}
