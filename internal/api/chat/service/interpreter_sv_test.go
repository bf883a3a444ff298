package chatService

import (
	"io"
	"testing"
	"time"

	"ChiTieuBackend/internal/api/budget"
	budgetService "ChiTieuBackend/internal/api/budget/service"
	"ChiTieuBackend/internal/api/chat"
	chatRepository "ChiTieuBackend/internal/api/chat/repository"
	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/gemini"
	"ChiTieuBackend/pkg/nlp"
	"ChiTieuBackend/pkg/redis"
	"ChiTieuBackend/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type fakeTransactionService struct {
	created []transaction.CreateTransactionRequest
	deleted []int64
	nextID  int64
}

func (f *fakeTransactionService) Create(_ context.Context, req transaction.CreateTransactionRequest) (int64, error) {
	f.created = append(f.created, req)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeTransactionService) Delete(_ context.Context, _ string, id int64) error {
	if id == 999 {
		return transaction.ErrTransactionNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransactionService) GetByID(_ context.Context, _ string, _ int64) (entity.Transaction, error) {
	return entity.Transaction{}, transaction.ErrTransactionNotFound
}

func (f *fakeTransactionService) GetRecent(_ context.Context, _ string, _ int) ([]entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionService) ListByMonth(_ context.Context, _ string, _, _ int) (transaction.TransactionListResponse, error) {
	return transaction.TransactionListResponse{}, nil
}

func (f *fakeTransactionService) MonthlySummary(_ context.Context, _ string, month, year int) (transaction.MonthlySummaryResponse, error) {
	return transaction.MonthlySummaryResponse{Month: month, Year: year}, nil
}

type fakeBudgetService struct {
	applyErr error
	applied  []nlp.Operation
	nows     []time.Time
}

func (f *fakeBudgetService) ApplyBudgetOperation(_ context.Context, _ string, op nlp.Operation, now time.Time) (entity.MonthlyBudget, error) {
	if f.applyErr != nil {
		return entity.MonthlyBudget{}, f.applyErr
	}
	f.applied = append(f.applied, op)
	f.nows = append(f.nows, now)
	return entity.MonthlyBudget{Month: op.Month, Year: op.Year, LimitAmount: op.Amount}, nil
}

func (f *fakeBudgetService) ApplyCategoryBudgetOperation(_ context.Context, _ string, op nlp.Operation, now time.Time) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, op)
	f.nows = append(f.nows, now)
	return nil
}

func (f *fakeBudgetService) DeleteAllCategoryBudgets(_ context.Context, _ string, _, _ int) error {
	return nil
}

func (f *fakeBudgetService) SetBudget(_ context.Context, _ budget.SetBudgetRequest) (entity.MonthlyBudget, error) {
	return entity.MonthlyBudget{}, nil
}

func (f *fakeBudgetService) DeleteBudget(_ context.Context, _ string, _, _ int) error { return nil }

func (f *fakeBudgetService) GetOverview(_ context.Context, _ string, month, year int) (budget.BudgetOverviewResponse, error) {
	return budget.BudgetOverviewResponse{Month: month, Year: year}, nil
}

func (f *fakeBudgetService) SetCategoryBudget(_ context.Context, _ budget.SetCategoryBudgetRequest) error {
	return nil
}

func (f *fakeBudgetService) DeleteCategoryBudget(_ context.Context, _, _ string, _, _ int) error {
	return nil
}

func (f *fakeBudgetService) GetHistory(_ context.Context, _ string, _ int) ([]entity.BudgetHistoryEntry, error) {
	return nil, nil
}

type fakeChatRepo struct {
	messages []entity.ChatMessage
}

func (f *fakeChatRepo) NewClient(_ bool) (chatRepository.Client, error) {
	return chatRepository.Client{
		Messages: (*fakeMessages)(f),
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeMessages fakeChatRepo

func (f *fakeMessages) Insert(_ context.Context, m entity.ChatMessage) error {
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessages) ListRecent(_ context.Context, _ string, limit int) ([]entity.ChatMessage, error) {
	if limit > len(f.messages) {
		limit = len(f.messages)
	}
	return f.messages[len(f.messages)-limit:], nil
}

type fakeRedis struct {
	window []redis.HistoryMessage
}

func (f *fakeRedis) GetConversation(_ context.Context, _ string) ([]redis.HistoryMessage, error) {
	return f.window, nil
}

func (f *fakeRedis) AppendConversation(_ context.Context, _ string, msgs []redis.HistoryMessage, _ time.Duration) error {
	f.window = append(f.window, msgs...)
	return nil
}

func (f *fakeRedis) ClearConversation(_ context.Context, _ string) error {
	f.window = nil
	return nil
}

type fakeGemini struct {
	reply string
	err   error
	calls int
}

func (f *fakeGemini) Chat(_ context.Context, _ string, _ []gemini.Message, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type chatFixture struct {
	svc          IChatService
	transactions *fakeTransactionService
	budgets      *fakeBudgetService
	repo         *fakeChatRepo
	redis        *fakeRedis
	gemini       *fakeGemini
}

func newChatFixture() *chatFixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &chatFixture{
		transactions: &fakeTransactionService{},
		budgets:      &fakeBudgetService{},
		repo:         &fakeChatRepo{},
		redis:        &fakeRedis{},
		gemini:       &fakeGemini{},
	}
	f.svc = New(log, f.repo, f.transactions, f.budgets, f.redis, f.gemini, utils.New())
	return f
}

var _ budgetService.IBudgetService = (*fakeBudgetService)(nil)

func TestSendMessage_RecordsExpenseOffline(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "hôm qua ăn sáng 25k",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.AppliedCount)
	assert.Equal(t, 0, res.FailedCount)
	assert.Contains(t, res.Reply, "Đã ghi chi tiêu")

	require.Len(t, f.transactions.created, 1)
	created := f.transactions.created[0]
	assert.Equal(t, int64(25_000), created.Amount)
	assert.Equal(t, string(entity.CategoryFoodHome), created.Category)
	assert.Equal(t, string(entity.TransactionTypeExpense), created.Type)

	// Both halves of the exchange are persisted.
	require.Len(t, f.repo.messages, 2)
	assert.Equal(t, string(entity.ChatRoleUser), f.repo.messages[0].Role)
	assert.Equal(t, string(entity.ChatRoleAssistant), f.repo.messages[1].Role)

	// The remote model is never consulted for a parsed command.
	assert.Zero(t, f.gemini.calls)
}

func TestSendMessage_BulkTallyAndPartialFailure(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "ăn sáng 25k và cafe 30k",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.AppliedCount)
	assert.Contains(t, res.Reply, "Hoàn tất 2/2 mục.")
}

func TestSendMessage_DeleteByID(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "Xóa chi tiêu #42",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.AppliedCount)
	assert.Contains(t, res.Reply, "#42")
	assert.Equal(t, []int64{42}, f.transactions.deleted)
}

func TestSendMessage_DeleteMissingTransaction(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "Xóa chi tiêu #999",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.FailedCount)
	assert.Contains(t, res.Reply, "Không tìm thấy chi tiêu #999")
}

func TestSendMessage_BudgetMutationInBudgetMode(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "tăng ngân sách thêm 2 triệu",
		Mode:    string(nlp.ModeBudget),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.AppliedCount)
	require.Len(t, f.budgets.applied, 1)
	assert.Equal(t, nlp.OpBudgetIncrease, f.budgets.applied[0].Kind)
	assert.Equal(t, int64(2_000_000), f.budgets.applied[0].Amount)
}

func TestSendMessage_BatchSharesOneClockReading(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "xăng 500k, tiền nhà 3 triệu",
		Mode:    string(nlp.ModeCategoryBudget),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.AppliedCount)
	require.Len(t, f.budgets.nows, 2)
	assert.True(t, f.budgets.nows[0].Equal(f.budgets.nows[1]),
		"every operation in a message must see the same clock reading")
}

func TestSendMessage_PastMonthBudgetFailureLine(t *testing.T) {
	f := newChatFixture()
	f.budgets.applyErr = budget.ErrPastMonth

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "đặt ngân sách tháng 1 là 5 triệu",
		Mode:    string(nlp.ModeBudget),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.FailedCount)
	assert.Contains(t, res.Reply, "đã qua")
}

func TestSendMessage_EditExpenseIsRedirected(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "sửa chi tiêu #12 thành 50k",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Reply, "Chỉnh sửa trực tiếp chưa được hỗ trợ")
	assert.Empty(t, f.transactions.created)
	assert.Empty(t, f.transactions.deleted)
}

func TestSendMessage_QueriesNeedNetworkWhenOffline(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "phân tích chi tiêu tháng này giúp mình",
		Online:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, replyNeedsNetwork, res.Reply)
	assert.Zero(t, f.gemini.calls)
}

func TestSendMessage_NotUnderstoodOffline(t *testing.T) {
	f := newChatFixture()

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "xin chào bạn nhé",
		Online:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, replyNotUnderstood, res.Reply)
}

func TestSendMessage_RemoteReplyWithEmbeddedExpense(t *testing.T) {
	f := newChatFixture()
	f.gemini.reply = `Mình đã ghi lại giúp bạn nhé!
{"type":"expense","name":"Ăn tối","amount":120000,"currency":"VND","category":"Ăn ngoài & Cafe","day":10,"month":6,"year":2025}`

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "tối qua mình với bạn đi ăn hết tầm trăm hai, ghi lại giúp nhé, cảm ơn bạn nhiều",
		Online:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.gemini.calls)
	assert.Equal(t, 1, res.RecordedByRemote)
	assert.NotContains(t, res.Reply, `"amount"`)
	assert.Contains(t, res.Reply, "Mình đã ghi lại giúp bạn nhé!")

	require.Len(t, f.transactions.created, 1)
	created := f.transactions.created[0]
	assert.Equal(t, "Ăn tối", created.Description)
	assert.Equal(t, "2025-06-10", created.Date)
}

func TestSendMessage_RemoteFailureUsesFixedString(t *testing.T) {
	f := newChatFixture()
	f.gemini.err = assert.AnError

	res, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "phân tích chi tiêu tháng này giúp mình",
		Online:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, replyRemoteError, res.Reply)
}

func TestSendMessage_EmptyMessageRejected(t *testing.T) {
	f := newChatFixture()

	_, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "   ",
	})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

func TestSendMessage_InvalidModeRejected(t *testing.T) {
	f := newChatFixture()

	_, err := f.svc.SendMessage(context.Background(), chat.SendMessageRequest{
		UserID:  "user-1",
		Message: "ăn sáng 25k",
		Mode:    "nonsense",
	})
	assert.ErrorIs(t, err, chat.ErrInvalidMode)
}
