// Package limits holds request body size caps. These keep oversized
// payloads from exhausting memory before JSON decoding starts.
package limits

const (
	// MaxJSONBody caps ordinary JSON API request bodies.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxWorkItemBody caps work item writes, which can carry attachment
	// data URLs inline.
	MaxWorkItemBody = 8 << 20 // 8 MB
)
