package chatService

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ChiTieuBackend/internal/api/budget"
	"ChiTieuBackend/internal/api/chat"
	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"
	"ChiTieuBackend/pkg/nlp"
	"ChiTieuBackend/pkg/redis"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const conversationTTL = 30 * time.Minute

// SendMessage runs one interpretation cycle: parse the utterance offline,
// apply whatever operations came out of it, and only fall through to the
// remote model when the caller is online and the parser deferred.
func (s *chatService) SendMessage(ctx context.Context, req chat.SendMessageRequest) (chat.SendMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return chat.SendMessageResponse{}, chat.ErrEmptyMessage
	}

	mode := nlp.ModeChat
	if req.Mode != "" {
		mode = nlp.Mode(req.Mode)
		if !mode.Valid() {
			return chat.SendMessageResponse{}, chat.ErrInvalidMode
		}
	}

	now := time.Now()
	result := s.parser.Parse(message, mode, now)

	var res chat.SendMessageResponse

	switch result.Type {
	case nlp.ResultOperations:
		res = s.applyOperations(ctx, req.UserID, result.Operations, now)

	case nlp.ResultNotUnderstood:
		if req.Online {
			res = s.escalate(ctx, req.UserID, message, result.Type, mode, now)
		} else {
			res.Reply = replyNotUnderstood
		}

	default: // analysis / info / finance queries
		if req.Online {
			res = s.escalate(ctx, req.UserID, message, result.Type, mode, now)
		} else {
			res.Reply = replyNeedsNetwork
		}
	}

	s.recordTurn(ctx, req.UserID, string(mode), message, res.Reply)

	return res, nil
}

// applyOperations executes each operation in order and accumulates one reply
// line per item. A failed item never aborts the items after it. The whole
// batch shares the clock reading that anchored parsing.
func (s *chatService) applyOperations(ctx context.Context, userID string, ops []nlp.Operation, now time.Time) chat.SendMessageResponse {
	var lines []string
	applied, failed := 0, 0

	for _, op := range ops {
		line, err := s.applyOperation(ctx, userID, op, now)
		if err != nil {
			failed++
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"operation":  string(op.Kind),
				"error":      err.Error(),
			}).Warn("Operation from chat command failed")
			lines = append(lines, operationFailureLine(op, err))
			continue
		}
		applied++
		lines = append(lines, line)
	}

	if len(ops) > 1 {
		lines = append(lines, fmt.Sprintf("Hoàn tất %d/%d mục.", applied, len(ops)))
	}

	return chat.SendMessageResponse{
		Reply:        strings.Join(lines, "\n"),
		AppliedCount: applied,
		FailedCount:  failed,
	}
}

func (s *chatService) applyOperation(ctx context.Context, userID string, op nlp.Operation, now time.Time) (string, error) {
	switch op.Kind {
	case nlp.OpExpenseAdd:
		txType := entity.TypeForCategory(op.Category)
		id, err := s.transactionService.Create(ctx, transaction.CreateTransactionRequest{
			UserID:      userID,
			Description: op.Description,
			Category:    op.Category,
			Amount:      op.Amount,
			Type:        string(txType),
			Date:        op.Date.Format("2006-01-02"),
		})
		if err != nil {
			return "", err
		}
		if txType == entity.TransactionTypeIncome {
			return fmt.Sprintf("Đã ghi khoản thu #%d: %s — %s (%s)", id, op.Description, s.utils.FormatVND(op.Amount), op.Category), nil
		}
		return fmt.Sprintf("Đã ghi chi tiêu #%d: %s — %s (%s)", id, op.Description, s.utils.FormatVND(op.Amount), op.Category), nil

	case nlp.OpExpenseDelete:
		if err := s.transactionService.Delete(ctx, userID, op.TargetID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Đã xóa chi tiêu #%d.", op.TargetID), nil

	case nlp.OpExpenseEdit:
		// Direct edits are intentionally unsupported; delete-then-re-add
		// keeps the numeric ids stable for the user.
		return replyEditUnsupported, nil

	case nlp.OpBudgetSet, nlp.OpBudgetIncrease, nlp.OpBudgetDecrease:
		b, err := s.budgetService.ApplyBudgetOperation(ctx, userID, op, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Ngân sách tháng %d/%d hiện là %s.", b.Month, b.Year, s.utils.FormatVND(b.LimitAmount)), nil

	case nlp.OpBudgetDelete:
		if _, err := s.budgetService.ApplyBudgetOperation(ctx, userID, op, now); err != nil {
			return "", err
		}
		return fmt.Sprintf("Đã xóa ngân sách tháng %d/%d.", op.Month, op.Year), nil

	case nlp.OpCategoryBudgetSet:
		if err := s.budgetService.ApplyCategoryBudgetOperation(ctx, userID, op, now); err != nil {
			return "", err
		}
		return fmt.Sprintf("Đã đặt ngân sách %s tháng %d/%d: %s.", op.Category, op.Month, op.Year, s.utils.FormatVND(op.Amount)), nil

	case nlp.OpCategoryBudgetDelete:
		if err := s.budgetService.ApplyCategoryBudgetOperation(ctx, userID, op, now); err != nil {
			return "", err
		}
		return fmt.Sprintf("Đã xóa ngân sách %s tháng %d/%d.", op.Category, op.Month, op.Year), nil

	case nlp.OpCategoryBudgetDeleteAll:
		if err := s.budgetService.DeleteAllCategoryBudgets(ctx, userID, op.Month, op.Year); err != nil {
			return "", err
		}
		return fmt.Sprintf("Đã xóa toàn bộ ngân sách danh mục tháng %d/%d.", op.Month, op.Year), nil
	}

	return "", fmt.Errorf("unsupported operation %q", op.Kind)
}

// operationFailureLine translates a failed operation into the explanatory
// message the user sees inside the bulk reply.
func operationFailureLine(op nlp.Operation, err error) string {
	switch {
	case errors.Is(err, budget.ErrPastMonth):
		return fmt.Sprintf("Không thể thay đổi ngân sách của tháng %d/%d vì đã qua.", op.Month, op.Year)
	case errors.Is(err, budget.ErrNoBudgetToAdjust):
		return fmt.Sprintf("Chưa có ngân sách tháng %d/%d để điều chỉnh. Hãy đặt ngân sách trước.", op.Month, op.Year)
	case errors.Is(err, budget.ErrOverAllocation):
		return fmt.Sprintf("Ngân sách %s vượt quá hạn mức tháng, không thể lưu.", op.Category)
	case errors.Is(err, budget.ErrBudgetNotFound):
		return fmt.Sprintf("Không tìm thấy ngân sách tháng %d/%d.", op.Month, op.Year)
	case errors.Is(err, budget.ErrCategoryBudgetNotFound):
		return fmt.Sprintf("Không tìm thấy ngân sách %s tháng %d/%d.", op.Category, op.Month, op.Year)
	case errors.Is(err, transaction.ErrTransactionNotFound):
		return fmt.Sprintf("Không tìm thấy chi tiêu #%d.", op.TargetID)
	}
	return replyGenericFailure
}

// recordTurn persists both halves of the exchange and refreshes the Redis
// window. Failures here are logged and swallowed; the user already has the
// reply in hand.
func (s *chatService) recordTurn(ctx context.Context, userID, mode, userText, assistantText string) {
	client, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to open chat repository client")
		return
	}

	now := time.Now()
	for i, turn := range []struct {
		role    entity.ChatRole
		content string
	}{
		{entity.ChatRoleUser, userText},
		{entity.ChatRoleAssistant, assistantText},
	} {
		if turn.content == "" {
			continue
		}
		id, err := s.utils.NewULIDFromTimestamp(now.Add(time.Duration(i) * time.Millisecond))
		if err != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to mint chat message id")
			return
		}
		if err := client.Messages.Insert(ctx, entity.ChatMessage{
			ID:      id,
			UserID:  userID,
			Role:    string(turn.role),
			Content: turn.content,
			Mode:    mode,
		}); err != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to persist chat message")
		}
	}

	window := []redis.HistoryMessage{
		{Role: string(entity.ChatRoleUser), Content: userText},
		{Role: string(entity.ChatRoleAssistant), Content: assistantText},
	}
	if err := s.redis.AppendConversation(ctx, userID, window, conversationTTL); err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to extend conversation window")
	}
}

func (s *chatService) GetHistory(ctx context.Context, userID string, limit int) ([]entity.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	client, err := s.chatRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return client.Messages.ListRecent(ctx, userID, limit)
}

func (s *chatService) ClearConversation(ctx context.Context, userID string) error {
	return s.redis.ClearConversation(ctx, userID)
}
