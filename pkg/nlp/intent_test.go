package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mode   Mode
		family CommandFamily
	}{
		{name: "budget delete", text: "xóa ngân sách tháng này", mode: ModeBudget, family: FamilyBudgetDelete},
		{name: "budget increase", text: "tăng ngân sách thêm 2 triệu", mode: ModeBudget, family: FamilyBudgetMutation},
		{name: "budget plain amount", text: "ngân sách 10 triệu", mode: ModeBudget, family: FamilyBudgetMutation},
		{name: "budget analysis question", text: "phân tích chi tiêu của tôi", mode: ModeBudget, family: FamilyAnalysisQuery},
		{name: "budget info question", text: "ngân sách của tôi thế nào", mode: ModeBudget, family: FamilyInfoQuery},

		{name: "category delete all", text: "xóa hết ngân sách danh mục", mode: ModeCategoryBudget, family: FamilyCategoryBudgetDeleteAll},
		{name: "category delete one", text: "xóa ngân sách ăn uống", mode: ModeCategoryBudget, family: FamilyCategoryBudgetDelete},
		{name: "category set", text: "ăn uống 2 triệu, di chuyển 500k", mode: ModeCategoryBudget, family: FamilyCategoryBudgetMutation},

		{name: "bulk delete all", text: "xóa tất cả", mode: ModeBulkExpense, family: FamilyCategoryBudgetDeleteAll},
		{name: "bulk delete by id", text: "xóa #12 #15", mode: ModeBulkExpense, family: FamilyExpenseDelete},
		{name: "bulk edit", text: "sửa #12", mode: ModeBulkExpense, family: FamilyExpenseEdit},
		{name: "bulk add", text: "ăn sáng 25k và cafe 30k", mode: ModeBulkExpense, family: FamilyExpenseAdd},

		{name: "chat budget delete outranks expense delete", text: "xóa ngân sách tháng 7", mode: ModeChat, family: FamilyBudgetDelete},
		{name: "chat budget mutation", text: "tăng ngân sách lên 10 triệu", mode: ModeChat, family: FamilyBudgetMutation},
		{name: "chat expense delete", text: "xóa chi tiêu #42", mode: ModeChat, family: FamilyExpenseDelete},
		{name: "chat expense edit needs an id", text: "sửa chi tiêu #42", mode: ModeChat, family: FamilyExpenseEdit},
		{name: "chat analysis", text: "tư vấn giúp tôi cách tiết kiệm", mode: ModeChat, family: FamilyAnalysisQuery},
		{name: "chat expense add", text: "hôm qua đổ xăng 50k", mode: ModeChat, family: FamilyExpenseAdd},
		{name: "chat finance query", text: "tháng này tôi đã chi bao nhiêu", mode: ModeChat, family: FamilyFinanceQuery},
		{name: "chat gibberish", text: "xin chào bạn", mode: ModeChat, family: FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.family, Classify(tt.text, tt.mode))
		})
	}
}

func TestClassifyBudgetPhrasing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want BudgetPhrasing
	}{
		{name: "plain set", text: "đặt ngân sách 5 triệu", want: PhrasingSet},
		{name: "increase delta", text: "tăng ngân sách thêm 2 triệu", want: PhrasingIncrease},
		{name: "decrease delta", text: "giảm ngân sách 1 triệu", want: PhrasingDecrease},
		{name: "raise to target", text: "tăng ngân sách lên 10 triệu", want: PhrasingAbsoluteSet},
		{name: "lower to target", text: "giảm ngân sách xuống 3 triệu", want: PhrasingAbsoluteSet},
		{name: "nâng lên variant", text: "nâng hạn mức lên 8 triệu", want: PhrasingAbsoluteSet},
		{name: "bớt as decrease", text: "bớt ngân sách 500 nghìn", want: PhrasingDecrease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBudgetPhrasing(tt.text))
		})
	}
}
