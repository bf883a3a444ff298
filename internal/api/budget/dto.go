package budget

type SetBudgetRequest struct {
	UserID string `json:"-"`
	Month  int    `json:"month" validate:"required,min=1,max=12"`
	Year   int    `json:"year" validate:"required,min=2000"`
	Limit  int64  `json:"limit" validate:"required,gt=0"`
}

type SetCategoryBudgetRequest struct {
	UserID   string `json:"-"`
	Category string `json:"category" validate:"required"`
	Month    int    `json:"month" validate:"required,min=1,max=12"`
	Year     int    `json:"year" validate:"required,min=2000"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

type BudgetResponse struct {
	Month       int   `json:"month"`
	Year        int   `json:"year"`
	LimitAmount int64 `json:"limit_amount"`
}

type CategoryBudgetResponse struct {
	Category string `json:"category"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Amount   int64  `json:"amount"`
}

type BudgetOverviewResponse struct {
	Month           int                      `json:"month"`
	Year            int                      `json:"year"`
	LimitAmount     int64                    `json:"limit_amount"`
	AllocatedAmount int64                    `json:"allocated_amount"`
	CategoryBudgets []CategoryBudgetResponse `json:"category_budgets"`
}

type HistoryEntryResponse struct {
	Action      string `json:"action"`
	Scope       string `json:"scope"`
	Category    string `json:"category,omitempty"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
