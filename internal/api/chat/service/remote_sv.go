package chatService

import (
	"fmt"
	"strings"
	"time"

	"ChiTieuBackend/internal/api/chat"
	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"
	"ChiTieuBackend/pkg/gemini"
	"ChiTieuBackend/pkg/nlp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// escalate hands the utterance to the remote model with financial context
// attached, then persists any expense objects the model embedded in its
// reply. Remote failures become a fixed Vietnamese string; they are never
// retried here.
func (s *chatService) escalate(ctx context.Context, userID, message string, resultType nlp.ResultType, mode nlp.Mode, now time.Time) chat.SendMessageResponse {
	requestID := contextPkg.GetRequestID(ctx)

	systemInstruction := s.buildSystemInstruction(ctx, userID, mode, now)

	utterance := message
	switch resultType {
	case nlp.ResultAnalysisQuery:
		utterance = nlp.PrefixAnalysis + "\n" + message
	case nlp.ResultInfoQuery:
		utterance = nlp.PrefixInfo + "\n" + message
	}

	history := s.conversationHistory(ctx, userID)

	reply, err := s.gemini.Chat(ctx, systemInstruction, history, utterance)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Remote model request failed")
		return chat.SendMessageResponse{Reply: replyRemoteError}
	}

	objects, display := gemini.ExtractExpenseObjects(reply)
	recorded := s.persistRemoteExpenses(ctx, userID, objects, now)

	if strings.TrimSpace(display) == "" {
		display = replyEmptyRemote
	}

	return chat.SendMessageResponse{
		Reply:            display,
		AppliedCount:     recorded,
		RecordedByRemote: recorded,
	}
}

func (s *chatService) conversationHistory(ctx context.Context, userID string) []gemini.Message {
	window, err := s.redis.GetConversation(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to load conversation window")
		return nil
	}

	history := make([]gemini.Message, 0, len(window))
	for _, m := range window {
		role := "user"
		if m.Role == string(entity.ChatRoleAssistant) {
			role = "model"
		}
		history = append(history, gemini.Message{Role: role, Content: m.Content})
	}

	return history
}

// buildSystemInstruction embeds the current date, the category vocabulary and
// the caller's financial standing so the model answers from real numbers.
// Budget-management modes get the budget picture; everything else gets the
// month's transaction summary.
func (s *chatService) buildSystemInstruction(ctx context.Context, userID string, mode nlp.Mode, now time.Time) string {
	var b strings.Builder

	b.WriteString("Bạn là trợ lý tài chính cá nhân nói tiếng Việt, trả lời ngắn gọn và thân thiện.\n")
	fmt.Fprintf(&b, "Hôm nay là ngày %s.\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "Danh mục chi tiêu hợp lệ: %s.\n", joinCategories(entity.ExpenseCategories()))
	fmt.Fprintf(&b, "Danh mục thu nhập hợp lệ: %s.\n", joinCategories(entity.IncomeCategories()))
	b.WriteString(`Khi người dùng muốn ghi lại một khoản thu hoặc chi, hãy chèn vào câu trả lời một đối tượng JSON theo đúng mẫu {"type":"expense|income","name":"...","amount":123000,"currency":"VND","category":"...","day":1,"month":1,"year":2025} cho từng khoản. Ngoài các đối tượng JSON đó, phần còn lại của câu trả lời là văn bản thường cho người đọc.` + "\n")

	switch mode {
	case nlp.ModeBudget, nlp.ModeCategoryBudget:
		s.writeBudgetContext(ctx, &b, userID, now)
	default:
		s.writeFinancialContext(ctx, &b, userID, now)
	}

	return b.String()
}

func joinCategories(categories []entity.Category) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (s *chatService) writeFinancialContext(ctx context.Context, b *strings.Builder, userID string, now time.Time) {
	summary, err := s.transactionService.MonthlySummary(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to load monthly summary for prompt")
		return
	}

	fmt.Fprintf(b, "\nTình hình tài chính tháng %d/%d của người dùng:\n", summary.Month, summary.Year)
	fmt.Fprintf(b, "- Tổng thu: %s\n", s.utils.FormatVND(summary.TotalIncome))
	fmt.Fprintf(b, "- Tổng chi: %s\n", s.utils.FormatVND(summary.TotalExpense))
	fmt.Fprintf(b, "- Còn lại: %s\n", s.utils.FormatVND(summary.Balance))
	for _, ct := range summary.ByCategory {
		fmt.Fprintf(b, "- %s: %s\n", ct.Category, s.utils.FormatVND(ct.Total))
	}

	recent, err := s.transactionService.GetRecent(ctx, userID, 10)
	if err != nil {
		return
	}
	if len(recent) > 0 {
		b.WriteString("Giao dịch gần đây:\n")
		for _, tx := range recent {
			fmt.Fprintf(b, "- #%d %s: %s (%s, %s)\n", tx.ID, tx.Description, s.utils.FormatVND(tx.Amount), tx.Category, tx.Date.Format("02/01/2006"))
		}
	}
}

func (s *chatService) writeBudgetContext(ctx context.Context, b *strings.Builder, userID string, now time.Time) {
	overview, err := s.budgetService.GetOverview(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to load budget overview for prompt")
		return
	}

	fmt.Fprintf(b, "\nNgân sách tháng %d/%d của người dùng:\n", overview.Month, overview.Year)
	if overview.LimitAmount > 0 {
		fmt.Fprintf(b, "- Hạn mức tháng: %s\n", s.utils.FormatVND(overview.LimitAmount))
		fmt.Fprintf(b, "- Đã phân bổ: %s\n", s.utils.FormatVND(overview.AllocatedAmount))
	} else {
		b.WriteString("- Chưa đặt hạn mức tháng.\n")
	}
	for _, cb := range overview.CategoryBudgets {
		fmt.Fprintf(b, "- %s: %s\n", cb.Category, s.utils.FormatVND(cb.Amount))
	}
}

// persistRemoteExpenses writes model-extracted expense objects through the
// same transaction service chat commands use. Items with a missing date fall
// back to today; unknown categories fall back to the catch-all buckets.
func (s *chatService) persistRemoteExpenses(ctx context.Context, userID string, objects []gemini.ExpenseObject, now time.Time) int {
	recorded := 0

	for _, obj := range objects {
		txType := string(entity.TransactionTypeExpense)
		if obj.Type == string(entity.TransactionTypeIncome) {
			txType = string(entity.TransactionTypeIncome)
		}

		category := obj.Category
		if !entity.IsValidCategory(txType, category) {
			category = string(entity.CategoryOther)
			if txType == string(entity.TransactionTypeIncome) {
				category = string(entity.CategoryOtherIncome)
			}
		}

		date := now
		if obj.Year > 0 && obj.Month >= 1 && obj.Month <= 12 && obj.Day >= 1 && obj.Day <= 31 {
			date = time.Date(obj.Year, time.Month(obj.Month), obj.Day, 0, 0, 0, 0, now.Location())
			if date.Day() != obj.Day {
				date = now
			}
		}

		amount := obj.Amount
		if amount < 0 {
			amount = -amount
		}

		name := strings.TrimSpace(obj.Name)
		if name == "" {
			name = category
		}

		_, err := s.transactionService.Create(ctx, transaction.CreateTransactionRequest{
			UserID:      userID,
			Description: name,
			Category:    category,
			Amount:      amount,
			Type:        txType,
			Date:        date.Format("2006-01-02"),
		})
		if err != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to persist model-extracted expense")
			continue
		}
		recorded++
	}

	return recorded
}
