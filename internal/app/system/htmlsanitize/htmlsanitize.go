// Package htmlsanitize strips unsafe markup from user-supplied HTML.
// Work item descriptions and comments pass through Sanitize before they
// are persisted.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns html with scripts, event handlers, and unsafe URLs
// removed. Plain text and common formatting tags pass through unchanged.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
