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

type BudgetDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Month       int            `db:"month"`
	Year        int            `db:"year"`
	LimitAmount int64          `db:"limit_amount"`
	MonthDate   sql.NullTime   `db:"month_date"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *budgetRepository) GetForMonth(c context.Context, userID string, month, year int) (entity.MonthlyBudget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BudgetDB

	query, args, err := sqlx.Named(queryGetBudgetForMonth, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetForMonth named query preparation err")
		return entity.MonthlyBudget{}, err
	}
	query = r.q.Rebind(query)

	if err := sqlx.GetContext(c, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.MonthlyBudget{}, budget.ErrBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetForMonth execution err")
		return entity.MonthlyBudget{}, err
	}

	return entity.MonthlyBudget{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		Month:       row.Month,
		Year:        row.Year,
		LimitAmount: row.LimitAmount,
		MonthDate:   row.MonthDate.Time,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}, nil
}

func (r *budgetRepository) Upsert(c context.Context, b entity.MonthlyBudget) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"id":           b.ID,
		"user_id":      b.UserID,
		"month":        b.Month,
		"year":         b.Year,
		"limit_amount": b.LimitAmount,
		"month_date":   b.MonthDate,
		"created_at":   now,
		"updated_at":   now,
	}

	query, args, err := sqlx.Named(queryUpsertBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Upsert budget")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when upserting budget")
		return err
	}

	return nil
}

func (r *budgetRepository) Delete(c context.Context, userID string, month, year int) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteBudget, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Delete budget")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting budget")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}
