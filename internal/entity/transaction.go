package entity

import (
	"errors"
	"time"
)

// Transaction is a single recorded expense or income. Amount is signed:
// negative for expenses, positive for income, and the sign must agree with
// Type. Amounts are whole VND.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	errInvalidTransactionType = errors.New("transaction type must be income or expense")
	errAmountSignMismatch     = errors.New("transaction amount sign does not match type")
	errZeroAmount             = errors.New("transaction amount must not be zero")
)

func (t *Transaction) Validate() error {
	if t.Type != string(TransactionTypeIncome) && t.Type != string(TransactionTypeExpense) {
		return errInvalidTransactionType
	}
	if t.Amount == 0 {
		return errZeroAmount
	}
	if t.Type == string(TransactionTypeExpense) && t.Amount > 0 {
		return errAmountSignMismatch
	}
	if t.Type == string(TransactionTypeIncome) && t.Amount < 0 {
		return errAmountSignMismatch
	}
	if !IsValidCategory(t.Type, t.Category) {
		return errors.New("invalid category for transaction type")
	}
	return nil
}
