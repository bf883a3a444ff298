package transactionRepository

const (
	queryInsertTransaction = `
INSERT INTO transactions (user_id, description, category, amount, type, date, created_at, updated_at)
VALUES (:user_id, :description, :category, :amount, :type, :date, :created_at, :updated_at)
RETURNING id`

	queryDeleteTransaction = `
DELETE FROM transactions
    WHERE id = :id AND user_id = :user_id`

	queryGetTransactionByID = `
SELECT id, user_id, description, category, amount, type, date, created_at, updated_at
FROM transactions
    WHERE id = :id AND user_id = :user_id`

	queryGetRecentTransactions = `
SELECT id, user_id, description, category, amount, type, date, created_at, updated_at
FROM transactions
    WHERE user_id = :user_id
ORDER BY date DESC, id DESC
LIMIT :limit`

	queryListTransactionsByMonth = `
SELECT id, user_id, description, category, amount, type, date, created_at, updated_at
FROM transactions
    WHERE user_id = :user_id
      AND EXTRACT(MONTH FROM date) = :month
      AND EXTRACT(YEAR FROM date) = :year
ORDER BY date DESC, id DESC`

	querySumByCategoryForMonth = `
SELECT category, SUM(amount) AS total
FROM transactions
    WHERE user_id = :user_id
      AND EXTRACT(MONTH FROM date) = :month
      AND EXTRACT(YEAR FROM date) = :year
GROUP BY category`
)
