package transactionService

import (
	"ChiTieuBackend/internal/api/transaction"
	transactionRepository "ChiTieuBackend/internal/api/transaction/repository"
	"ChiTieuBackend/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ITransactionService interface {
	Create(ctx context.Context, req transaction.CreateTransactionRequest) (int64, error)
	Delete(ctx context.Context, userID string, id int64) error
	GetByID(ctx context.Context, userID string, id int64) (entity.Transaction, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)
	ListByMonth(ctx context.Context, userID string, month, year int) (transaction.TransactionListResponse, error)
	MonthlySummary(ctx context.Context, userID string, month, year int) (transaction.MonthlySummaryResponse, error)
}

type transactionService struct {
	log                   *logrus.Logger
	transactionRepository transactionRepository.Repository
}

func New(log *logrus.Logger, tr transactionRepository.Repository) ITransactionService {
	return &transactionService{
		log:                   log,
		transactionRepository: tr,
	}
}
