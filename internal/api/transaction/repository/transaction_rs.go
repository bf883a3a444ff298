package transactionRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TransactionDB struct {
	ID          int64          `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Description sql.NullString `db:"description"`
	Category    sql.NullString `db:"category"`
	Amount      int64          `db:"amount"`
	Type        sql.NullString `db:"type"`
	Date        sql.NullTime   `db:"date"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *transactionRepository) Insert(c context.Context, tr entity.Transaction) (int64, error) {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"user_id":     tr.UserID,
		"description": tr.Description,
		"category":    tr.Category,
		"amount":      tr.Amount,
		"type":        tr.Type,
		"date":        tr.Date,
		"created_at":  now,
		"updated_at":  now,
	}

	query, args, err := sqlx.Named(queryInsertTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Insert")
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when inserting transaction")
		return 0, err
	}

	return id, nil
}

func (r *transactionRepository) Delete(c context.Context, userID string, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Delete")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting transaction")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) GetByID(c context.Context, userID string, id int64) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var row TransactionDB

	query, args, err := sqlx.Named(queryGetTransactionByID, map[string]interface{}{
		"id":      id,
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	if err := sqlx.GetContext(c, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Transaction{}, transaction.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Transaction{}, err
	}

	return r.makeTransaction(row), nil
}

func (r *transactionRepository) GetRecent(c context.Context, userID string, limit int) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryGetRecentTransactions, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecent named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []TransactionDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecent execution err")
		return nil, err
	}

	return r.makeTransactions(rows), nil
}

func (r *transactionRepository) ListByMonth(c context.Context, userID string, month, year int) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryListTransactionsByMonth, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByMonth named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []TransactionDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByMonth execution err")
		return nil, err
	}

	return r.makeTransactions(rows), nil
}

func (r *transactionRepository) SumByCategoryForMonth(c context.Context, userID string, month, year int) (map[string]int64, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(querySumByCategoryForMonth, map[string]interface{}{
		"user_id": userID,
		"month":   month,
		"year":    year,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumByCategoryForMonth named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []struct {
		Category string `db:"category"`
		Total    int64  `db:"total"`
	}
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumByCategoryForMonth execution err")
		return nil, err
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

func (r *transactionRepository) makeTransaction(row TransactionDB) entity.Transaction {
	return entity.Transaction{
		ID:          row.ID,
		UserID:      row.UserID.String,
		Description: row.Description.String,
		Category:    row.Category.String,
		Amount:      row.Amount,
		Type:        row.Type.String,
		Date:        row.Date.Time,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func (r *transactionRepository) makeTransactions(rows []TransactionDB) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeTransaction(row))
	}
	return out
}
