package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount int64
		found  bool
	}{
		{name: "thousand shorthand", text: "500k", amount: 500_000, found: true},
		{name: "detached thousand unit", text: "ăn trưa 45 k", amount: 45_000, found: true},
		{name: "nghìn unit", text: "mua sách 120 nghìn", amount: 120_000, found: true},
		{name: "million", text: "2 triệu", amount: 2_000_000, found: true},
		{name: "million with sub amount", text: "2 triệu 5", amount: 2_500_000, found: true},
		{name: "million with explicit thousand sub", text: "2 triệu 300 nghìn", amount: 2_300_000, found: true},
		{name: "million large sub reads as thousands", text: "2 triệu 500", amount: 2_500_000, found: true},
		{name: "billion with sub amount", text: "8 tỷ 6", amount: 8_600_000_000, found: true},
		{name: "billion with explicit million sub", text: "8 tỷ 500 triệu", amount: 8_500_000_000, found: true},
		{name: "fractional million", text: "1,5 triệu", amount: 1_500_000, found: true},
		{name: "grouped thousands", text: "chuyển 1.000.000 đồng", amount: 1_000_000, found: true},
		{name: "plain number", text: "nhận 250000", amount: 250_000, found: true},
		{name: "small bare number accepted for expenses", text: "gửi xe 5000", amount: 5000, found: true},
		{name: "no number at all", text: "không có số", found: false},
		{name: "tr abbreviation", text: "lương 15tr", amount: 15_000_000, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, found := ExtractAmount(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.amount, amount)
		})
	}
}

func TestExtractBudgetAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount int64
		found  bool
	}{
		{name: "unit word always counts", text: "đặt ngân sách 5 triệu", amount: 5_000_000, found: true},
		{name: "five digit bare number", text: "ngân sách 50000", amount: 50_000, found: true},
		{name: "short bare number rejected", text: "ngân sách tháng 12", found: false},
		{name: "day month numerals rejected", text: "ngày 10/11", found: false},
		{name: "grouped number counts digits not separators", text: "đặt 100.000", amount: 100_000, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, found := ExtractBudgetAmount(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.amount, amount)
		})
	}
}
