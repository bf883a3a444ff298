package entity

import "time"

// MonthlyBudget is the single spending envelope for one calendar month.
// MonthDate is always the first of the month; there is at most one record
// per (user, month, year).
type MonthlyBudget struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	LimitAmount int64     `json:"limit_amount"`
	MonthDate   time.Time `json:"month_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryBudget allocates part of a month's envelope to one category.
// The sum of a month's allocations must not exceed that month's
// MonthlyBudget limit when one is set.
type CategoryBudget struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BudgetHistoryAction string

const (
	BudgetHistoryActionCreate BudgetHistoryAction = "create"
	BudgetHistoryActionUpdate BudgetHistoryAction = "update"
	BudgetHistoryActionDelete BudgetHistoryAction = "delete"
)

type BudgetHistoryScope string

const (
	BudgetHistoryScopeMonthly  BudgetHistoryScope = "monthly"
	BudgetHistoryScopeCategory BudgetHistoryScope = "category"
)

// BudgetHistoryEntry is an append-only audit record written on every
// successful budget mutation. Entries are never updated or deleted.
type BudgetHistoryEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Scope       string    `json:"scope"`
	Category    string    `json:"category,omitempty"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
