package budgetRepository

import (
	"context"
	"database/sql"
	"time"

	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type HistoryDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Action      sql.NullString `db:"action"`
	Scope       sql.NullString `db:"scope"`
	Category    sql.NullString `db:"category"`
	Amount      int64          `db:"amount"`
	Date        sql.NullTime   `db:"date"`
	Description sql.NullString `db:"description"`
	CreatedAt   sql.NullTime   `db:"created_at"`
}

func (r *historyRepository) Append(c context.Context, e entity.BudgetHistoryEntry) error {
	requestID := contextPkg.GetRequestID(c)

	var category interface{}
	if e.Category != "" {
		category = e.Category
	}

	argsKV := map[string]interface{}{
		"id":          e.ID,
		"user_id":     e.UserID,
		"action":      e.Action,
		"scope":       e.Scope,
		"category":    category,
		"amount":      e.Amount,
		"date":        e.Date,
		"description": e.Description,
		"created_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryAppendBudgetHistory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Append history")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when appending budget history")
		return err
	}

	return nil
}

func (r *historyRepository) List(c context.Context, userID string, limit int) ([]entity.BudgetHistoryEntry, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListBudgetHistory, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List history named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []HistoryDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("List history execution err")
		return nil, err
	}

	out := make([]entity.BudgetHistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.BudgetHistoryEntry{
			ID:          row.ID.String,
			UserID:      row.UserID.String,
			Action:      row.Action.String,
			Scope:       row.Scope.String,
			Category:    row.Category.String,
			Amount:      row.Amount,
			Date:        row.Date.Time,
			Description: row.Description.String,
			CreatedAt:   row.CreatedAt.Time,
		})
	}
	return out, nil
}
