package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{name: "yesterday", text: "hôm qua ăn sáng 25k", want: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)},
		{name: "day before yesterday", text: "hôm kia đổ xăng", want: time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)},
		{name: "last week", text: "tuần trước mua sách", want: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)},
		{name: "explicit day month", text: "ngày 10/11 ăn phở", want: time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)},
		{name: "explicit full date", text: "ngày 01/02/2024", want: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{name: "two digit year", text: "05/03/24", want: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{name: "impossible date falls back to now", text: "ngày 31/02 ăn phở", want: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{name: "no date defaults to now", text: "cafe 30k", want: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.text, testNow))
		})
	}
}

func TestExtractMonthYear(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		month int
		year  int
	}{
		{name: "numbered month", text: "ngân sách tháng 12", month: 12, year: 2025},
		{name: "numbered month with year", text: "tháng 3/2026", month: 3, year: 2026},
		{name: "slash month year", text: "đặt 5 triệu cho 11/2025", month: 11, year: 2025},
		{name: "this month", text: "tháng này", month: 6, year: 2025},
		{name: "next month", text: "tháng sau", month: 7, year: 2025},
		{name: "next month alt wording", text: "tháng tới", month: 7, year: 2025},
		{name: "default to current", text: "đặt ngân sách 5 triệu", month: 6, year: 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := ExtractMonthYear(tt.text, testNow)
			assert.Equal(t, tt.month, month)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestExtractMonthYearDecemberRollover(t *testing.T) {
	december := time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)
	month, year := ExtractMonthYear("tháng sau", december)
	assert.Equal(t, 1, month)
	assert.Equal(t, 2026, year)
}

func TestExtractMonthYearNextMonthFromMonthEnd(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		month int
		year  int
	}{
		{name: "january 31st lands on february", now: time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC), month: 2, year: 2026},
		{name: "march 31st lands on april", now: time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC), month: 4, year: 2025},
		{name: "december 31st lands on january", now: time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC), month: 1, year: 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := ExtractMonthYear("tháng sau", tt.now)
			assert.Equal(t, tt.month, month)
			assert.Equal(t, tt.year, year)
		})
	}
}
