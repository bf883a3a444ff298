package transactionRepository

import (
	"ChiTieuBackend/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Transactions: &transactionRepository{q: db, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Client struct {
	Transactions interface {
		Insert(ctx context.Context, tr entity.Transaction) (int64, error)
		Delete(ctx context.Context, userID string, id int64) error
		GetByID(ctx context.Context, userID string, id int64) (entity.Transaction, error)
		GetRecent(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)
		ListByMonth(ctx context.Context, userID string, month, year int) ([]entity.Transaction, error)
		SumByCategoryForMonth(ctx context.Context, userID string, month, year int) (map[string]int64, error)
	}

	Commit   func() error
	Rollback func() error
}

type transactionRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
