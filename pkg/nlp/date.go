package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reDayMonth  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
	reMonthWord = regexp.MustCompile(`tháng\s*(\d{1,2})(?:\s*/\s*(\d{4}))?`)
	reMonthYear = regexp.MustCompile(`(\d{1,2})/(\d{4})`)
)

// ParseDate resolves a relative or absolute Vietnamese date expression to a
// calendar day, anchored to now. When nothing in the text looks like a date
// the anchor itself is returned, which is what per-segment expense parsing
// wants: an undated line is a today line.
func ParseDate(text string, now time.Time) time.Time {
	lowered := strings.ToLower(Normalize(text))
	day := truncateToDay(now)

	switch {
	case strings.Contains(lowered, "hôm qua"):
		return day.AddDate(0, 0, -1)
	case strings.Contains(lowered, "hôm kia"):
		return day.AddDate(0, 0, -2)
	case strings.Contains(lowered, "tuần trước"):
		return day.AddDate(0, 0, -7)
	}

	if m := reDayMonth.FindStringSubmatch(lowered); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			year = y
		}
		if d >= 1 && d <= 31 && mo >= 1 && mo <= 12 {
			parsed := time.Date(year, time.Month(mo), d, 0, 0, 0, 0, now.Location())
			// Reject rollover artifacts like 31/2.
			if parsed.Day() == d && int(parsed.Month()) == mo {
				return parsed
			}
		}
	}

	return day
}

// ExtractMonthYear resolves a budget target month: "tháng 12", "tháng này",
// "tháng sau", "12/2025". Defaults to the month of now.
func ExtractMonthYear(text string, now time.Time) (int, int) {
	lowered := strings.ToLower(Normalize(text))

	switch {
	case strings.Contains(lowered, "tháng này"):
		return int(now.Month()), now.Year()
	case strings.Contains(lowered, "tháng sau"), strings.Contains(lowered, "tháng tới"):
		// Step from the first of the month: AddDate on a late anchor day
		// would normalize Jan 31 into Mar 3 and skip February entirely.
		next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		return int(next.Month()), next.Year()
	}

	if m := reMonthWord.FindStringSubmatch(lowered); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			year := now.Year()
			if m[2] != "" {
				year, _ = strconv.Atoi(m[2])
			}
			return month, year
		}
	}

	if m := reMonthYear.FindStringSubmatch(lowered); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			year, _ := strconv.Atoi(m[2])
			return month, year
		}
	}

	return int(now.Month()), now.Year()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
