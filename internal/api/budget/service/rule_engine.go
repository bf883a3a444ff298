package budgetService

import (
	"errors"
	"fmt"
	"time"

	"ChiTieuBackend/internal/api/budget"
	budgetRepository "ChiTieuBackend/internal/api/budget/repository"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/nlp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// pastMonth reports whether the target month lies strictly before the
// wall-clock month. Mutations against past months are always rejected.
func pastMonth(now time.Time, month, year int) bool {
	if year != now.Year() {
		return year < now.Year()
	}
	return month < int(now.Month())
}

// ApplyBudgetOperation executes one monthly-budget mutation inside a
// transaction and appends the matching audit record. Increase and decrease
// require an existing budget; a decrease never takes the limit below zero.
func (s *budgetService) ApplyBudgetOperation(ctx context.Context, userID string, op nlp.Operation, now time.Time) (entity.MonthlyBudget, error) {
	if pastMonth(now, op.Month, op.Year) {
		return entity.MonthlyBudget{}, budget.ErrPastMonth
	}

	client, err := s.budgetRepository.NewClient(true)
	if err != nil {
		return entity.MonthlyBudget{}, err
	}
	defer client.Rollback()

	existing, err := client.Budgets.GetForMonth(ctx, userID, op.Month, op.Year)
	exists := err == nil
	if err != nil && !errors.Is(err, budget.ErrBudgetNotFound) {
		return entity.MonthlyBudget{}, err
	}

	var (
		newLimit int64
		action   entity.BudgetHistoryAction
	)

	switch op.Kind {
	case nlp.OpBudgetSet:
		newLimit = op.Amount
		action = entity.BudgetHistoryActionCreate
		if exists {
			action = entity.BudgetHistoryActionUpdate
		}

	case nlp.OpBudgetIncrease:
		if !exists {
			return entity.MonthlyBudget{}, budget.ErrNoBudgetToAdjust
		}
		newLimit = existing.LimitAmount + op.Amount
		action = entity.BudgetHistoryActionUpdate

	case nlp.OpBudgetDecrease:
		if !exists {
			return entity.MonthlyBudget{}, budget.ErrNoBudgetToAdjust
		}
		newLimit = existing.LimitAmount - op.Amount
		if newLimit < 0 {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"month":   op.Month,
				"year":    op.Year,
				"limit":   existing.LimitAmount,
				"delta":   op.Amount,
			}).Warn("budget decrease below zero, clamping to zero")
			newLimit = 0
		}
		action = entity.BudgetHistoryActionUpdate

	case nlp.OpBudgetDelete:
		if err := client.Budgets.Delete(ctx, userID, op.Month, op.Year); err != nil {
			return entity.MonthlyBudget{}, err
		}
		entry := entity.BudgetHistoryEntry{
			UserID:      userID,
			Action:      string(entity.BudgetHistoryActionDelete),
			Scope:       string(entity.BudgetHistoryScopeMonthly),
			Amount:      existing.LimitAmount,
			Date:        s.utils.MonthStart(op.Month, op.Year),
			Description: fmt.Sprintf("Xóa ngân sách tháng %d/%d", op.Month, op.Year),
		}
		if err := s.appendHistory(ctx, client, entry); err != nil {
			return entity.MonthlyBudget{}, err
		}
		return entity.MonthlyBudget{}, client.Commit()

	default:
		return entity.MonthlyBudget{}, fmt.Errorf("unsupported budget operation %q", op.Kind)
	}

	b := existing
	if !exists {
		id, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			return entity.MonthlyBudget{}, err
		}
		b = entity.MonthlyBudget{
			ID:        id,
			UserID:    userID,
			Month:     op.Month,
			Year:      op.Year,
			MonthDate: s.utils.MonthStart(op.Month, op.Year),
		}
	}
	b.LimitAmount = newLimit

	if err := client.Budgets.Upsert(ctx, b); err != nil {
		return entity.MonthlyBudget{}, err
	}

	entry := entity.BudgetHistoryEntry{
		UserID:      userID,
		Action:      string(action),
		Scope:       string(entity.BudgetHistoryScopeMonthly),
		Amount:      newLimit,
		Date:        b.MonthDate,
		Description: fmt.Sprintf("Ngân sách tháng %d/%d: %s", op.Month, op.Year, s.utils.FormatVND(newLimit)),
	}
	if err := s.appendHistory(ctx, client, entry); err != nil {
		return entity.MonthlyBudget{}, err
	}

	return b, client.Commit()
}

// ApplyCategoryBudgetOperation executes one category-allocation mutation.
// A set is rejected when the other categories' allocations plus the new
// amount would exceed the month's overall limit, if one is set.
func (s *budgetService) ApplyCategoryBudgetOperation(ctx context.Context, userID string, op nlp.Operation, now time.Time) error {
	if pastMonth(now, op.Month, op.Year) {
		return budget.ErrPastMonth
	}

	client, err := s.budgetRepository.NewClient(true)
	if err != nil {
		return err
	}
	defer client.Rollback()

	switch op.Kind {
	case nlp.OpCategoryBudgetSet:
		if !entity.IsValidExpenseCategory(op.Category) && !entity.IsValidIncomeCategory(op.Category) {
			return budget.ErrInvalidCategory
		}

		monthly, err := client.Budgets.GetForMonth(ctx, userID, op.Month, op.Year)
		if err != nil && !errors.Is(err, budget.ErrBudgetNotFound) {
			return err
		}

		siblings, err := client.CategoryBudgets.GetAllForMonth(ctx, userID, op.Month, op.Year)
		if err != nil {
			return err
		}

		var othersTotal int64
		exists := false
		existing := entity.CategoryBudget{}
		for _, cb := range siblings {
			if cb.Category == op.Category {
				exists = true
				existing = cb
				continue
			}
			othersTotal += cb.Amount
		}

		if monthly.LimitAmount > 0 && othersTotal+op.Amount > monthly.LimitAmount {
			return budget.ErrOverAllocation
		}

		cb := existing
		action := entity.BudgetHistoryActionUpdate
		if !exists {
			id, err := s.utils.NewULIDFromTimestamp(now)
			if err != nil {
				return err
			}
			cb = entity.CategoryBudget{
				ID:       id,
				UserID:   userID,
				Category: op.Category,
				Month:    op.Month,
				Year:     op.Year,
			}
			action = entity.BudgetHistoryActionCreate
		}
		cb.Amount = op.Amount

		if err := client.CategoryBudgets.Upsert(ctx, cb); err != nil {
			return err
		}

		entry := entity.BudgetHistoryEntry{
			UserID:      userID,
			Action:      string(action),
			Scope:       string(entity.BudgetHistoryScopeCategory),
			Category:    op.Category,
			Amount:      op.Amount,
			Date:        s.utils.MonthStart(op.Month, op.Year),
			Description: fmt.Sprintf("Ngân sách %s tháng %d/%d: %s", op.Category, op.Month, op.Year, s.utils.FormatVND(op.Amount)),
		}
		if err := s.appendHistory(ctx, client, entry); err != nil {
			return err
		}

	case nlp.OpCategoryBudgetDelete:
		existing, err := client.CategoryBudgets.Get(ctx, userID, op.Category, op.Month, op.Year)
		if err != nil {
			return err
		}
		if err := client.CategoryBudgets.Delete(ctx, userID, op.Category, op.Month, op.Year); err != nil {
			return err
		}
		entry := entity.BudgetHistoryEntry{
			UserID:      userID,
			Action:      string(entity.BudgetHistoryActionDelete),
			Scope:       string(entity.BudgetHistoryScopeCategory),
			Category:    op.Category,
			Amount:      existing.Amount,
			Date:        s.utils.MonthStart(op.Month, op.Year),
			Description: fmt.Sprintf("Xóa ngân sách %s tháng %d/%d", op.Category, op.Month, op.Year),
		}
		if err := s.appendHistory(ctx, client, entry); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unsupported category budget operation %q", op.Kind)
	}

	return client.Commit()
}

// DeleteAllCategoryBudgets clears every allocation for the month and writes
// a single audit record covering the sweep.
func (s *budgetService) DeleteAllCategoryBudgets(ctx context.Context, userID string, month, year int) error {
	client, err := s.budgetRepository.NewClient(true)
	if err != nil {
		return err
	}
	defer client.Rollback()

	existing, err := client.CategoryBudgets.GetAllForMonth(ctx, userID, month, year)
	if err != nil {
		return err
	}

	var total int64
	for _, cb := range existing {
		total += cb.Amount
	}

	if err := client.CategoryBudgets.DeleteAllForMonth(ctx, userID, month, year); err != nil {
		return err
	}

	entry := entity.BudgetHistoryEntry{
		UserID:      userID,
		Action:      string(entity.BudgetHistoryActionDelete),
		Scope:       string(entity.BudgetHistoryScopeCategory),
		Amount:      total,
		Date:        s.utils.MonthStart(month, year),
		Description: fmt.Sprintf("Xóa toàn bộ ngân sách danh mục tháng %d/%d", month, year),
	}
	if err := s.appendHistory(ctx, client, entry); err != nil {
		return err
	}

	return client.Commit()
}

func (s *budgetService) appendHistory(ctx context.Context, client budgetRepository.Client, entry entity.BudgetHistoryEntry) error {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}
	entry.ID = id

	return client.History.Append(ctx, entry)
}
