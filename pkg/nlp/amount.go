package nlp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Vietnamese monetary shorthand scales. "tỷ 6" style sub-amounts are read as
// hundred-scale when the sub-number is small: "8 tỷ 6" means 8.6 billion, but
// "8 tỷ 500" means 8 billion 500 million. The cut-off is 100: a sub-value of
// 100 or more is taken at the next named scale directly, below 100 it is
// taken at one scale higher (hundred-millions / hundred-thousands).
const subScaleCutoff = 100

var (
	billionUnits  = map[string]bool{"tỷ": true, "tỉ": true}
	millionUnits  = map[string]bool{"triệu": true, "tr": true}
	thousandUnits = map[string]bool{"nghìn": true, "ngàn": true, "k": true}

	reGroupedNumber = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})+$`)
	reAttachedUnit  = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(tỷ|tỉ|triệu|tr|nghìn|ngàn|k)$`)
)

// ExtractAmount parses the first monetary amount in an expense utterance.
// Any positive number counts, with or without a unit word.
func ExtractAmount(text string) (int64, bool) {
	return extractAmount(text, false)
}

// ExtractBudgetAmount parses a budget amount. Bare numbers without a unit
// must have at least five digits so day/month numerals in the same sentence
// are not mistaken for money.
func ExtractBudgetAmount(text string) (int64, bool) {
	return extractAmount(text, true)
}

func extractAmount(text string, budget bool) (int64, bool) {
	tokens := amountTokens(text)

	// Unit-carrying patterns first, in shorthand priority order.
	for i := 0; i < len(tokens); i++ {
		value, digits, ok := parseNumberToken(tokens[i])
		if !ok || digits == 0 {
			continue
		}
		if i+1 >= len(tokens) {
			break
		}
		unit := tokens[i+1]
		switch {
		case billionUnits[unit]:
			total := value * 1e9
			if sub, subOK := subAmount(tokens, i+2, millionUnits); subOK {
				total += sub
			}
			return toAmount(total)
		case millionUnits[unit]:
			total := value * 1e6
			if sub, subOK := subAmountThousand(tokens, i+2); subOK {
				total += sub
			}
			return toAmount(total)
		case thousandUnits[unit]:
			return toAmount(value * 1e3)
		}
	}

	// Plain number, taken literally.
	for _, token := range tokens {
		value, digits, ok := parseNumberToken(token)
		if !ok || digits == 0 {
			continue
		}
		if budget && digits < 5 {
			continue
		}
		return toAmount(value)
	}

	return 0, false
}

// subAmount reads an optional trailing sub-number after a billion unit:
// "8 tỷ 6" or "8 tỷ 500 triệu". An explicit unit word pins the scale,
// otherwise the cut-off rule applies at the millions scale.
func subAmount(tokens []string, at int, explicitUnits map[string]bool) (float64, bool) {
	if at >= len(tokens) {
		return 0, false
	}
	sub, digits, ok := parseNumberToken(tokens[at])
	if !ok || digits == 0 {
		return 0, false
	}
	if at+1 < len(tokens) && explicitUnits[tokens[at+1]] {
		return sub * 1e6, true
	}
	if sub >= subScaleCutoff {
		return sub * 1e6, true
	}
	return sub * 1e8, true
}

func subAmountThousand(tokens []string, at int) (float64, bool) {
	if at >= len(tokens) {
		return 0, false
	}
	sub, digits, ok := parseNumberToken(tokens[at])
	if !ok || digits == 0 {
		return 0, false
	}
	if at+1 < len(tokens) && thousandUnits[tokens[at+1]] {
		return sub * 1e3, true
	}
	if sub >= subScaleCutoff {
		return sub * 1e3, true
	}
	return sub * 1e5, true
}

// amountTokens lowercases and splits the utterance, detaching glued unit
// suffixes so "500k" and "500 k" tokenize the same way.
func amountTokens(text string) []string {
	lowered := strings.ToLower(Normalize(text))
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != ','
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,")
		if f == "" {
			continue
		}
		if m := reAttachedUnit.FindStringSubmatch(f); m != nil {
			tokens = append(tokens, m[1], m[2])
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// parseNumberToken parses a numeric token, honoring both Vietnamese
// grouped thousands ("1.000.000") and fractional separators ("2,5").
// The digit count is returned for the bare-number budget heuristic.
func parseNumberToken(token string) (float64, int, bool) {
	digits := 0
	for _, r := range token {
		if unicode.IsDigit(r) {
			digits++
		} else if r != '.' && r != ',' {
			return 0, 0, false
		}
	}
	if digits == 0 {
		return 0, 0, false
	}

	if reGroupedNumber.MatchString(token) {
		stripped := strings.Map(func(r rune) rune {
			if r == '.' || r == ',' {
				return -1
			}
			return r
		}, token)
		value, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return 0, 0, false
		}
		return value, digits, true
	}

	normalized := strings.ReplaceAll(token, ",", ".")
	if strings.Count(normalized, ".") > 1 {
		return 0, 0, false
	}
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, 0, false
	}
	return value, digits, true
}

func toAmount(value float64) (int64, bool) {
	rounded := int64(math.Round(value))
	if rounded <= 0 {
		return 0, false
	}
	return rounded, true
}
