package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	FormatVND(amount int64) string
	MonthStart(month, year int) time.Time
}

type utils struct {
	printer *message.Printer
}

func New() IUtils {
	return &utils{
		printer: message.NewPrinter(language.Vietnamese),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// FormatVND renders an amount the way Vietnamese chat users expect it:
// dot-grouped digits with a trailing currency marker, "1.500.000đ".
func (u *utils) FormatVND(amount int64) string {
	grouped := u.printer.Sprintf("%d", amount)
	// gotext groups with commas for vi in some CLDR versions; normalize.
	grouped = strings.ReplaceAll(grouped, ",", ".")
	return grouped + "đ"
}

// MonthStart is the representative first-of-month date budget records carry.
func (u *utils) MonthStart(month, year int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// ParseMonthKey splits a "MM/YYYY" key, used by budget query endpoints.
func ParseMonthKey(key string) (int, int, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", key)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 2000 {
		return 0, 0, fmt.Errorf("invalid year in %q", key)
	}
	return month, year, nil
}
