package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedModelOutput reports a model reply without a parseable JSON
// array. Fatal for generation, non-fatal for the chat fallback path.
var ErrMalformedModelOutput = errors.New("no valid JSON array in model output")

// ExtractJSONArray locates the substring between the first '[' and the
// last ']' of a free-form model reply and parses it as an array of item
// payloads.
func ExtractJSONArray(text string) ([]map[string]any, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrMalformedModelOutput
	}

	var raws []map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	return raws, nil
}
