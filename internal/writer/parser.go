// Package writer implements the adaptive chunked generation loop that
// turns a Blueprint into committed GeneratedItems via sentinel-framed
// LLM output.
package writer

import (
	"encoding/json"
	"strings"

	"assessment-forge/internal/llmprovider"
)

const sentinel = "<END_OF_PROBLEM>"

// itemShape mirrors llmprovider.GeneratedItemShape; kept local so the
// parser doesn't need a domain import for a transient wire shape.
type itemShape = llmprovider.GeneratedItemShape

// parseResult is parseChunk's output.
type parseResult struct {
	Items        []itemShape
	FailedBlocks int
	Truncated    bool
}

// parseChunk strips optional markdown code fences, splits raw on the
// sentinel, and attempts a JSON parse of each block. truncated is true
// when the final segment lacks a sentinel or its JSON parse failed —
// even if earlier items parsed cleanly.
func parseChunk(raw string) parseResult {
	cleaned := stripCodeFences(raw)
	segments := strings.Split(cleaned, sentinel)

	// A trailing empty segment means the text ended exactly on a
	// sentinel — nothing truncated. Any other trailing segment is
	// either unterminated or garbage.
	trailing := segments[len(segments)-1]
	segments = segments[:len(segments)-1]

	result := parseResult{}
	lastFailed := false
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		var item itemShape
		if err := json.Unmarshal([]byte(seg), &item); err != nil {
			result.FailedBlocks++
			lastFailed = true
			continue
		}
		lastFailed = false
		result.Items = append(result.Items, item)
	}
	if lastFailed {
		result.Truncated = true
	}

	if strings.TrimSpace(trailing) != "" {
		result.Truncated = true
		var item itemShape
		if err := json.Unmarshal([]byte(strings.TrimSpace(trailing)), &item); err == nil {
			// A complete JSON object arrived without its sentinel yet;
			// still usable, but the stream is flagged truncated because
			// there was no terminator to confirm the model meant to stop
			// there.
			result.Items = append(result.Items, item)
		}
	}

	return result
}

// stripCodeFences removes a leading/trailing ``` or ```json fence if
// present, leaving the sentinel-delimited body untouched.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return raw
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return trimmed
}
