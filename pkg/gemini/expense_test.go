package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExpenseObjects(t *testing.T) {
	reply := "Đã ghi nhận chi tiêu của bạn:\n```json\n" +
		`{"type":"expense","name":"Ăn phở","amount":60000,"currency":"VND","category":"Ăn uống","day":14,"month":6,"year":2025}` +
		"\n```\nChúc bạn một ngày tốt lành!"

	objects, display := ExtractExpenseObjects(reply)

	require.Len(t, objects, 1)
	assert.Equal(t, "expense", objects[0].Type)
	assert.Equal(t, "Ăn phở", objects[0].Name)
	assert.Equal(t, int64(60000), objects[0].Amount)
	assert.Equal(t, "Ăn uống", objects[0].Category)
	assert.Equal(t, 14, objects[0].Day)

	assert.NotContains(t, display, "{")
	assert.Contains(t, display, "Đã ghi nhận chi tiêu của bạn:")
	assert.Contains(t, display, "Chúc bạn một ngày tốt lành!")
}

func TestExtractExpenseObjectsMultiple(t *testing.T) {
	reply := `{"type":"expense","name":"Cafe","amount":30000,"currency":"VND","category":"Ăn ngoài & Cafe","day":15,"month":6,"year":2025}` +
		` và ` +
		`{"type":"income","name":"Lương","amount":15000000,"currency":"VND","category":"Lương","day":1,"month":6,"year":2025}`

	objects, _ := ExtractExpenseObjects(reply)

	require.Len(t, objects, 2)
	assert.Equal(t, "expense", objects[0].Type)
	assert.Equal(t, "income", objects[1].Type)
}

func TestExtractExpenseObjectsLeavesPlainTextAlone(t *testing.T) {
	reply := "Bạn đã chi 1.200.000đ trong tháng này, chủ yếu cho Ăn uống."

	objects, display := ExtractExpenseObjects(reply)

	assert.Empty(t, objects)
	assert.Equal(t, reply, display)
}

func TestExtractExpenseObjectsIgnoresUnrelatedJSON(t *testing.T) {
	reply := `Cấu hình: {"foo":"bar"} xong.`

	objects, display := ExtractExpenseObjects(reply)

	assert.Empty(t, objects)
	assert.Equal(t, reply, display)
}
