package transaction

import "ChiTieuBackend/pkg/response"

var (
	ErrTransactionNotFound = response.NewError(404, "transaction not found")
	ErrInvalidCategory     = response.NewError(400, "invalid category for transaction type")
	ErrInvalidAmount       = response.NewError(400, "invalid transaction amount")
	ErrInvalidDate         = response.NewError(400, "invalid transaction date")
)
