package nlp

import (
	"strings"
	"unicode"
)

// Words that carry no meaning once the sentence has been reduced to a label.
var stopWords = map[string]struct{}{
	"tôi":   {},
	"mình":  {},
	"em":    {},
	"anh":   {},
	"chị":   {},
	"đã":    {},
	"vừa":   {},
	"mới":   {},
	"thêm":  {},
	"chi":   {},
	"tiêu":  {},
	"mất":   {},
	"hết":   {},
	"tốn":   {},
	"trả":   {},
	"đồng":  {},
	"vnd":   {},
	"vnđ":   {},
	"cho":   {},
	"tiền":  {},
	"khoản": {},
	"hôm":   {},
	"qua":   {},
	"kia":   {},
	"nay":   {},
	"tuần":  {},
	"trước": {},
	"ngày":  {},
	"là":    {},
	"với":   {},
	"bị":    {},
}

var amountUnitWords = map[string]struct{}{
	"tỷ": {}, "tỉ": {}, "triệu": {}, "tr": {},
	"nghìn": {}, "ngàn": {}, "k": {},
}

// ExtractLabel turns the raw sentence into a short human label for the
// transaction list. It strips the matched category wording, every numeric
// token and amount unit, date phrases and filler words, then tidies what is
// left. When nothing survives the label falls back to the category name.
func ExtractLabel(text, category string, matcher *CategoryMatcher) string {
	lowered := strings.ToLower(Normalize(text))

	if matcher != nil && category != "" {
		for _, needle := range matcher.CanonicalNeedles(category) {
			lowered = removeBounded(lowered, needle)
		}
	}

	var kept []string
	for _, tok := range strings.Fields(lowered) {
		trimmed := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if trimmed == "" {
			continue
		}
		if hasDigit(trimmed) {
			continue
		}
		if _, ok := amountUnitWords[trimmed]; ok {
			continue
		}
		if _, ok := stopWords[trimmed]; ok {
			continue
		}
		kept = append(kept, trimmed)
	}

	label := strings.Join(kept, " ")
	if label == "" {
		return category
	}
	return capitalizeFirst(label)
}

// removeBounded blanks every boundary-delimited occurrence of needle.
func removeBounded(text, needle string) string {
	for containsBounded(text, needle) {
		idx := boundedIndex(text, needle)
		if idx < 0 {
			break
		}
		text = text[:idx] + " " + text[idx+len(needle):]
	}
	return text
}

func boundedIndex(text, needle string) int {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			return -1
		}
		idx += offset
		if boundedAt(text, idx, len(needle)) {
			return idx
		}
		offset = idx + len(needle)
	}
	return -1
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func capitalizeFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
