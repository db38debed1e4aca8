package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON parses a model reply into v. Replies frequently arrive
// wrapped in a markdown code fence despite the prompt asking for bare
// JSON, so the fence is stripped first. No schema is enforced beyond
// what v itself requires.
func DecodeJSON(text string, v any) error {
	if err := json.Unmarshal([]byte(stripFence(text)), v); err != nil {
		return fmt.Errorf("parsing model response: %w", err)
	}
	return nil
}

// stripFence trims whitespace and, when the text is fenced with
// triple backticks, drops the opening line (which carries the language
// tag) and everything from the closing fence on.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		text = ""
	}
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
