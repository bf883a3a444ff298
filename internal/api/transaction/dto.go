package transaction

type CreateTransactionRequest struct {
	UserID      string `json:"-"`
	Description string `json:"description" validate:"required,max=255"`
	Category    string `json:"category" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Type        string `json:"type" validate:"required,oneof=income expense"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

type TransactionResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalIncome  int64                 `json:"total_income"`
	TotalExpense int64                 `json:"total_expense"`
	Balance      int64                 `json:"balance"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

type MonthlySummaryResponse struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	TotalIncome  int64           `json:"total_income"`
	TotalExpense int64           `json:"total_expense"`
	Balance      int64           `json:"balance"`
	ByCategory   []CategoryTotal `json:"by_category"`
}
