package budget

import "ChiTieuBackend/pkg/response"

var (
	ErrBudgetNotFound         = response.NewError(404, "budget not found")
	ErrCategoryBudgetNotFound = response.NewError(404, "category budget not found")
	ErrPastMonth              = response.NewError(400, "budgets can only target the current month or later")
	ErrNoBudgetToAdjust       = response.NewError(400, "no existing budget to adjust")
	ErrOverAllocation         = response.NewError(400, "category allocations would exceed the monthly limit")
	ErrInvalidCategory        = response.NewError(400, "unknown category")
)
