package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply is the structured answer the model is asked to produce.
type Reply struct {
	Answer      string  `json:"answer"`
	Suggestions []int64 `json:"suggestions"`
}

// ParseReply attempts to parse the LLM response text as JSON.
// Tries multiple strategies: direct parse, brace extraction, code block extraction.
func ParseReply(text string) (*Reply, error) {
	text = strings.TrimSpace(text)

	// Strategy 1: direct parse
	var result Reply
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return &result, nil
	}

	// Strategy 2: extract from first { to last }
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			jsonStr := text[start : end+1]
			if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
				return &result, nil
			}
		}
	}

	// Strategy 3: extract from code blocks
	if idx := strings.Index(text, "```json"); idx >= 0 {
		after := text[idx+7:]
		if end := strings.Index(after, "```"); end >= 0 {
			jsonStr := strings.TrimSpace(after[:end])
			if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
				return &result, nil
			}
		}
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		after := text[idx+3:]
		if end := strings.Index(after, "```"); end >= 0 {
			jsonStr := strings.TrimSpace(after[:end])
			if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
				return &result, nil
			}
		}
	}

	return nil, fmt.Errorf("failed to parse assistant reply as JSON: %.200s...", text)
}
