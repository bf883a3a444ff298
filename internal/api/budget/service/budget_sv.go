package budgetService

import (
	"errors"
	"time"

	"ChiTieuBackend/internal/api/budget"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/nlp"

	"golang.org/x/net/context"
)

func (s *budgetService) SetBudget(ctx context.Context, req budget.SetBudgetRequest) (entity.MonthlyBudget, error) {
	op := nlp.Operation{
		Kind:   nlp.OpBudgetSet,
		Amount: req.Limit,
		Month:  req.Month,
		Year:   req.Year,
	}

	return s.ApplyBudgetOperation(ctx, req.UserID, op, time.Now())
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, month, year int) error {
	op := nlp.Operation{
		Kind:  nlp.OpBudgetDelete,
		Month: month,
		Year:  year,
	}

	_, err := s.ApplyBudgetOperation(ctx, userID, op, time.Now())
	return err
}

func (s *budgetService) SetCategoryBudget(ctx context.Context, req budget.SetCategoryBudgetRequest) error {
	op := nlp.Operation{
		Kind:     nlp.OpCategoryBudgetSet,
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	}

	return s.ApplyCategoryBudgetOperation(ctx, req.UserID, op, time.Now())
}

func (s *budgetService) DeleteCategoryBudget(ctx context.Context, userID, category string, month, year int) error {
	op := nlp.Operation{
		Kind:     nlp.OpCategoryBudgetDelete,
		Category: category,
		Month:    month,
		Year:     year,
	}

	return s.ApplyCategoryBudgetOperation(ctx, userID, op, time.Now())
}

// GetOverview returns the month's limit alongside every category allocation.
// A missing monthly budget is not an error; the limit simply reads as zero.
func (s *budgetService) GetOverview(ctx context.Context, userID string, month, year int) (budget.BudgetOverviewResponse, error) {
	client, err := s.budgetRepository.NewClient(false)
	if err != nil {
		return budget.BudgetOverviewResponse{}, err
	}

	overview := budget.BudgetOverviewResponse{
		Month:           month,
		Year:            year,
		CategoryBudgets: []budget.CategoryBudgetResponse{},
	}

	monthly, err := client.Budgets.GetForMonth(ctx, userID, month, year)
	if err != nil && !errors.Is(err, budget.ErrBudgetNotFound) {
		return budget.BudgetOverviewResponse{}, err
	}
	overview.LimitAmount = monthly.LimitAmount

	allocations, err := client.CategoryBudgets.GetAllForMonth(ctx, userID, month, year)
	if err != nil {
		return budget.BudgetOverviewResponse{}, err
	}

	for _, cb := range allocations {
		overview.AllocatedAmount += cb.Amount
		overview.CategoryBudgets = append(overview.CategoryBudgets, budget.CategoryBudgetResponse{
			Category: cb.Category,
			Month:    cb.Month,
			Year:     cb.Year,
			Amount:   cb.Amount,
		})
	}

	return overview, nil
}

func (s *budgetService) GetHistory(ctx context.Context, userID string, limit int) ([]entity.BudgetHistoryEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	client, err := s.budgetRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return client.History.List(ctx, userID, limit)
}
