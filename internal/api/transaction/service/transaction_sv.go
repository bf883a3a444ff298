package transactionService

import (
	"time"

	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Create signs the amount from the request's positive figure: expenses are
// stored negative, income positive.
func (s *transactionService) Create(ctx context.Context, req transaction.CreateTransactionRequest) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !entity.IsValidCategory(req.Type, req.Category) {
		return 0, transaction.ErrInvalidCategory
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, transaction.ErrInvalidDate
	}

	amount := req.Amount
	if req.Type == string(entity.TransactionTypeExpense) {
		amount = -amount
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return 0, err
	}

	id, err := repo.Transactions.Insert(ctx, entity.Transaction{
		UserID:      req.UserID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      amount,
		Type:        req.Type,
		Date:        date,
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"transaction_id": id,
		"category":       req.Category,
	}).Info("Transaction recorded")

	return id, nil
}

func (s *transactionService) Delete(ctx context.Context, userID string, id int64) error {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Transactions.Delete(ctx, userID, id)
}

func (s *transactionService) GetByID(ctx context.Context, userID string, id int64) (entity.Transaction, error) {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return entity.Transaction{}, err
	}

	return repo.Transactions.GetByID(ctx, userID, id)
}

func (s *transactionService) GetRecent(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Transactions.GetRecent(ctx, userID, limit)
}

func (s *transactionService) ListByMonth(ctx context.Context, userID string, month, year int) (transaction.TransactionListResponse, error) {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return transaction.TransactionListResponse{}, err
	}

	items, err := repo.Transactions.ListByMonth(ctx, userID, month, year)
	if err != nil {
		return transaction.TransactionListResponse{}, err
	}

	res := transaction.TransactionListResponse{
		Transactions: make([]transaction.TransactionResponse, 0, len(items)),
	}
	for _, item := range items {
		if item.Amount >= 0 {
			res.TotalIncome += item.Amount
		} else {
			res.TotalExpense += -item.Amount
		}
		res.Transactions = append(res.Transactions, makeResponse(item))
	}
	res.Balance = res.TotalIncome - res.TotalExpense

	return res, nil
}

func (s *transactionService) MonthlySummary(ctx context.Context, userID string, month, year int) (transaction.MonthlySummaryResponse, error) {
	repo, err := s.transactionRepository.NewClient(false)
	if err != nil {
		return transaction.MonthlySummaryResponse{}, err
	}

	totals, err := repo.Transactions.SumByCategoryForMonth(ctx, userID, month, year)
	if err != nil {
		return transaction.MonthlySummaryResponse{}, err
	}

	res := transaction.MonthlySummaryResponse{Month: month, Year: year}
	for category, total := range totals {
		if total >= 0 {
			res.TotalIncome += total
		} else {
			res.TotalExpense += -total
		}
		res.ByCategory = append(res.ByCategory, transaction.CategoryTotal{
			Category: category,
			Total:    total,
		})
	}
	res.Balance = res.TotalIncome - res.TotalExpense

	return res, nil
}

func makeResponse(item entity.Transaction) transaction.TransactionResponse {
	return transaction.TransactionResponse{
		ID:          item.ID,
		Description: item.Description,
		Category:    item.Category,
		Amount:      item.Amount,
		Type:        item.Type,
		Date:        item.Date.Format("2006-01-02"),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}
