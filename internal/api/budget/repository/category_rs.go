package budgetRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ChiTieuBackend/internal/api/budget"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CategoryBudgetDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Category  sql.NullString `db:"category"`
	Month     int            `db:"month"`
	Year      int            `db:"year"`
	Amount    int64          `db:"amount"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (r *categoryBudgetRepository) Get(c context.Context, userID, category string, month, year int) (entity.CategoryBudget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row CategoryBudgetDB

	query, args, err := sqlx.Named(queryGetCategoryBudget, map[string]interface{}{
		"user_id":  userID,
		"category": category,
		"month":    month,
		"year":     year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Get category budget named query preparation err")
		return entity.CategoryBudget{}, err
	}
	query = r.q.Rebind(query)

	if err := sqlx.GetContext(c, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CategoryBudget{}, budget.ErrCategoryBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Get category budget execution err")
		return entity.CategoryBudget{}, err
	}

	return r.makeCategoryBudget(row), nil
}

func (r *categoryBudgetRepository) GetAllForMonth(c context.Context, userID string, month, year int) ([]entity.CategoryBudget, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryGetAllCategoryBudgetsForMonth, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllForMonth named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []CategoryBudgetDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllForMonth execution err")
		return nil, err
	}

	out := make([]entity.CategoryBudget, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeCategoryBudget(row))
	}
	return out, nil
}

func (r *categoryBudgetRepository) Upsert(c context.Context, cb entity.CategoryBudget) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"id":         cb.ID,
		"user_id":    cb.UserID,
		"category":   cb.Category,
		"month":      cb.Month,
		"year":       cb.Year,
		"amount":     cb.Amount,
		"created_at": now,
		"updated_at": now,
	}

	query, args, err := sqlx.Named(queryUpsertCategoryBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Upsert category budget")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when upserting category budget")
		return err
	}

	return nil
}

func (r *categoryBudgetRepository) Delete(c context.Context, userID, category string, month, year int) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteCategoryBudget, map[string]interface{}{
		"user_id":  userID,
		"category": category,
		"month":    month,
		"year":     year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Delete category budget")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting category budget")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return budget.ErrCategoryBudgetNotFound
	}

	return nil
}

func (r *categoryBudgetRepository) DeleteAllForMonth(c context.Context, userID string, month, year int) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteAllCategoryBudgetsForMonth, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteAllForMonth")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting category budgets")
		return err
	}

	return nil
}

func (r *categoryBudgetRepository) makeCategoryBudget(row CategoryBudgetDB) entity.CategoryBudget {
	return entity.CategoryBudget{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Category:  row.Category.String,
		Month:     row.Month,
		Year:      row.Year,
		Amount:    row.Amount,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
