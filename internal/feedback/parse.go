package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/parley/internal/llm"
)

// ErrEmptyReply is returned by Parse for a blank reply.
var ErrEmptyReply = errors.New("empty feedback reply")

// recordSchema is the shape the tutor is told to return.
var recordSchema = &llm.Schema{
	Name:        "tutor-feedback",
	Description: "Assessment of one German workplace answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"relevance_score": map[string]any{"type": "number"},
			"transcript":      map[string]any{"type": "string"},
			"what_worked": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"improvement":        map[string]any{"type": "string"},
			"suggested_response": map[string]any{"type": "string"},
			"score_explanation":  map[string]any{"type": "string"},
		},
		"required": []any{
			"relevance_score", "transcript", "what_worked",
			"improvement", "suggested_response", "score_explanation",
		},
	},
}

// StripFence removes markdown code-fence wrapping from a model reply: a
// leading ``` line (optionally tagged, e.g. ```json) and the closing ```
// with anything after it. Unfenced text is returned trimmed.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, tag included.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "```"), "json")
	}

	// Anything after the closing fence is chatter.
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// Parse decodes a tutor reply into a Record. It strips fences, checks the
// reply against the record schema and decodes it. Parse has no side
// effects; callers decide what to do on error.
func Parse(raw string) (Record, error) {
	body := StripFence(raw)
	if body == "" {
		return Record{}, ErrEmptyReply
	}

	if err := llm.ValidateJSON(recordSchema, json.RawMessage(body)); err != nil {
		return Record{}, fmt.Errorf("feedback reply: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return Record{}, fmt.Errorf("decode feedback reply: %w", err)
	}
	return rec, nil
}
