package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBulkExpense(t *testing.T) {
	p := NewParser()

	result := p.Parse("Hôm qua ăn sáng 25k và cafe 30k", ModeChat, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 2)

	yesterday := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	first := result.Operations[0]
	assert.Equal(t, OpExpenseAdd, first.Kind)
	assert.Equal(t, int64(25_000), first.Amount)
	assert.Equal(t, "Ăn uống", first.Category)
	assert.Equal(t, yesterday, first.Date)

	second := result.Operations[1]
	assert.Equal(t, OpExpenseAdd, second.Kind)
	assert.Equal(t, int64(30_000), second.Amount)
	assert.Equal(t, "Ăn ngoài & Cafe", second.Category)
	assert.Equal(t, yesterday, second.Date)
}

func TestParseMultiLineExpensesCarryTheirOwnDates(t *testing.T) {
	p := NewParser()

	result := p.Parse("hôm qua đổ xăng 50k\nhôm nay ăn trưa 45k", ModeBulkExpense, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 2)
	assert.Equal(t, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC), result.Operations[0].Date)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), result.Operations[1].Date)
}

func TestParseExpenseWithoutCategoryFallsBackToOther(t *testing.T) {
	p := NewParser()

	result := p.Parse("linh tinh 100k", ModeChat, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "Khác", result.Operations[0].Category)
	assert.Equal(t, "Linh tinh", result.Operations[0].Description)
}

func TestParseDeleteByID(t *testing.T) {
	p := NewParser()

	result := p.Parse("Xóa chi tiêu #42", ModeChat, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, OpExpenseDelete, result.Operations[0].Kind)
	assert.Equal(t, int64(42), result.Operations[0].TargetID)
}

func TestParseDeleteWithoutIDIsNotUnderstood(t *testing.T) {
	p := NewParser()

	result := p.Parse("xóa chi tiêu hôm qua", ModeChat, testNow)

	assert.Equal(t, ResultNotUnderstood, result.Type)
}

func TestParseEditByNamedID(t *testing.T) {
	p := NewParser()

	result := p.Parse("sửa id: 7 thành 100k", ModeBulkExpense, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, OpExpenseEdit, result.Operations[0].Kind)
	assert.Equal(t, int64(7), result.Operations[0].TargetID)
}

func TestParseBudgetMutations(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name   string
		text   string
		kind   OperationKind
		amount int64
		month  int
		year   int
	}{
		{name: "plain set", text: "đặt ngân sách 5 triệu", kind: OpBudgetSet, amount: 5_000_000, month: 6, year: 2025},
		{name: "set for named month", text: "đặt ngân sách tháng 12 là 8 triệu", kind: OpBudgetSet, amount: 8_000_000, month: 12, year: 2025},
		{name: "increase", text: "tăng ngân sách thêm 2 triệu", kind: OpBudgetIncrease, amount: 2_000_000, month: 6, year: 2025},
		{name: "decrease", text: "giảm ngân sách 1 triệu", kind: OpBudgetDecrease, amount: 1_000_000, month: 6, year: 2025},
		{name: "raise to target is a set", text: "tăng ngân sách lên 10 triệu", kind: OpBudgetSet, amount: 10_000_000, month: 6, year: 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Parse(tt.text, ModeBudget, testNow)
			require.Equal(t, ResultOperations, result.Type)
			require.Len(t, result.Operations, 1)

			op := result.Operations[0]
			assert.Equal(t, tt.kind, op.Kind)
			assert.Equal(t, tt.amount, op.Amount)
			assert.Equal(t, tt.month, op.Month)
			assert.Equal(t, tt.year, op.Year)
		})
	}
}

func TestParseBudgetMutationWithoutAmountIsNotUnderstood(t *testing.T) {
	p := NewParser()

	result := p.Parse("tăng ngân sách", ModeBudget, testNow)

	assert.Equal(t, ResultNotUnderstood, result.Type)
}

func TestParseCategoryBudgets(t *testing.T) {
	p := NewParser()

	result := p.Parse("ăn uống 2 triệu, cafe 500k; di chuyển 300k", ModeCategoryBudget, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 3)

	assert.Equal(t, "Ăn uống", result.Operations[0].Category)
	assert.Equal(t, int64(2_000_000), result.Operations[0].Amount)
	assert.Equal(t, "Ăn ngoài & Cafe", result.Operations[1].Category)
	assert.Equal(t, int64(500_000), result.Operations[1].Amount)
	assert.Equal(t, "Di chuyển", result.Operations[2].Category)
	assert.Equal(t, int64(300_000), result.Operations[2].Amount)
}

func TestParseCategoryBudgetDropsBadSegments(t *testing.T) {
	p := NewParser()

	result := p.Parse("ăn uống 2 triệu, vu vơ 500k, du lịch", ModeCategoryBudget, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "Ăn uống", result.Operations[0].Category)
}

func TestParseCategoryBudgetDeleteAll(t *testing.T) {
	p := NewParser()

	result := p.Parse("xóa hết ngân sách danh mục tháng này", ModeCategoryBudget, testNow)

	require.Equal(t, ResultOperations, result.Type)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, OpCategoryBudgetDeleteAll, result.Operations[0].Kind)
	assert.Equal(t, 6, result.Operations[0].Month)
	assert.Equal(t, 2025, result.Operations[0].Year)
}

func TestParseQueryRouting(t *testing.T) {
	p := NewParser()

	assert.Equal(t, ResultAnalysisQuery, p.Parse("phân tích chi tiêu giúp tôi", ModeBudget, testNow).Type)
	assert.Equal(t, ResultInfoQuery, p.Parse("ngân sách hiện tại thế nào", ModeBudget, testNow).Type)
	assert.Equal(t, ResultFinanceQuery, p.Parse("tháng này tôi đã chi bao nhiêu", ModeChat, testNow).Type)
	assert.Equal(t, ResultNotUnderstood, p.Parse("xin chào bạn", ModeChat, testNow).Type)
}

func TestExtractIDs(t *testing.T) {
	assert.Equal(t, []int64{12, 15}, ExtractIDs("xóa #12 #15"))
	assert.Equal(t, []int64{7}, ExtractIDs("sửa id: 7"))
	assert.Empty(t, ExtractIDs("không có id nào"))
}
