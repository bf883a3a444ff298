package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMatcherMatch(t *testing.T) {
	m := NewCategoryMatcher()

	tests := []struct {
		name     string
		text     string
		category string
		found    bool
	}{
		{name: "alias cafe", text: "tôi uống cafe sáng nay", category: "Ăn ngoài & Cafe", found: true},
		{name: "longest canonical wins", text: "đăng ký dịch vụ netflix", category: "Đăng ký & Dịch vụ", found: true},
		{name: "canonical exact", text: "ngân sách ăn uống 2 triệu", category: "Ăn uống", found: true},
		{name: "alias fuel", text: "xăng 500k", category: "Di chuyển", found: true},
		{name: "ampersand written out", text: "hóa đơn và tiện ích", category: "Hóa đơn & Tiện ích", found: true},
		{name: "no substring inside longer word", text: "trung bình", found: false},
		{name: "nothing matches", text: "hello world", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, found := m.Match(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestCategoryMatcherMatchExpense(t *testing.T) {
	m := NewCategoryMatcher()

	tests := []struct {
		name     string
		text     string
		category string
		found    bool
	}{
		{name: "meal alias", text: "ăn sáng 25k", category: "Ăn uống", found: true},
		{name: "budget alias still applies", text: "cafe 30k", category: "Ăn ngoài & Cafe", found: true},
		{name: "dish name", text: "phở bò 60k", category: "Ăn uống", found: true},
		{name: "canonical beats expense alias", text: "ăn sáng rồi đi du lịch 2 triệu", category: "Du lịch", found: true},
		{name: "unmatched", text: "abc xyz", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, found := m.MatchExpense(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestExtractLabel(t *testing.T) {
	m := NewCategoryMatcher()

	tests := []struct {
		name     string
		text     string
		category string
		want     string
	}{
		{name: "keeps the subject", text: "hôm qua tôi mua vé xem phim 120k", category: "Giải trí", want: "Mua vé xem phim"},
		{name: "alias survives as the label", text: "cafe 30k", category: "Ăn ngoài & Cafe", want: "Cafe"},
		{name: "falls back to category", text: "ăn uống 50k", category: "Ăn uống", want: "Ăn uống"},
		{name: "strips pronouns and verbs", text: "tôi đã chi 50k đổ xăng", category: "Di chuyển", want: "Đổ xăng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLabel(tt.text, tt.category, m))
		})
	}
}
