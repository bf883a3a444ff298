package gemini

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExpenseObject is the JSON shape the model embeds in its replies when the
// user's message contains transactions to record. The field set is part of
// the channel contract and must not change.
type ExpenseObject struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Category string `json:"category"`
	Day      int    `json:"day"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

// ExtractExpenseObjects pulls every embedded expense object out of a model
// reply and returns the display text with the JSON removed. Blocks that do
// not decode into the expected shape are left in the text untouched.
func ExtractExpenseObjects(reply string) ([]ExpenseObject, string) {
	var objects []ExpenseObject
	var display strings.Builder

	rest := reply
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			display.WriteString(rest)
			break
		}

		end := matchingBrace(rest, start)
		if end < 0 {
			display.WriteString(rest)
			break
		}

		block := rest[start : end+1]
		var obj ExpenseObject
		if err := json.UnmarshalFromString(block, &obj); err == nil && obj.Amount != 0 && obj.Type != "" {
			objects = append(objects, obj)
			display.WriteString(rest[:start])
		} else {
			display.WriteString(rest[:end+1])
		}
		rest = rest[end+1:]
	}

	return objects, tidyDisplay(display.String())
}

// matchingBrace finds the closing brace for the one at start, honoring
// nesting and string literals.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func tidyDisplay(s string) string {
	// Strip markdown fences the model wraps JSON in, then squeeze the
	// blank runs left behind.
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	lines := strings.Split(s, "\n")
	var kept []string
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !blank && len(kept) > 0 {
				kept = append(kept, "")
			}
			blank = true
			continue
		}
		blank = false
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
