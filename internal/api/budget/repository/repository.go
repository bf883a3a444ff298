package budgetRepository

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
		Budgets:         &budgetRepository{q: db, log: r.log},
		CategoryBudgets: &categoryBudgetRepository{q: db, log: r.log},
		History:         &historyRepository{q: db, log: r.log},
		Commit:          commitFunc,
		Rollback:        rollbackFunc,
	}, nil
}

type Client struct {
	Budgets interface {
		GetForMonth(ctx context.Context, userID string, month, year int) (entity.MonthlyBudget, error)
		Upsert(ctx context.Context, b entity.MonthlyBudget) error
		Delete(ctx context.Context, userID string, month, year int) error
	}

	CategoryBudgets interface {
		Get(ctx context.Context, userID, category string, month, year int) (entity.CategoryBudget, error)
		GetAllForMonth(ctx context.Context, userID string, month, year int) ([]entity.CategoryBudget, error)
		Upsert(ctx context.Context, cb entity.CategoryBudget) error
		Delete(ctx context.Context, userID, category string, month, year int) error
		DeleteAllForMonth(ctx context.Context, userID string, month, year int) error
	}

	History interface {
		Append(ctx context.Context, e entity.BudgetHistoryEntry) error
		List(ctx context.Context, userID string, limit int) ([]entity.BudgetHistoryEntry, error)
	}

	Commit   func() error
	Rollback func() error
}

type budgetRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type categoryBudgetRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type historyRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
