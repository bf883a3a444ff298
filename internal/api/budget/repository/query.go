package budgetRepository

const (
	queryGetBudgetForMonth = `
SELECT id, user_id, month, year, limit_amount, month_date, created_at, updated_at
FROM monthly_budgets
    WHERE user_id = :user_id AND month = :month AND year = :year`

	queryUpsertBudget = `
INSERT INTO monthly_budgets (id, user_id, month, year, limit_amount, month_date, created_at, updated_at)
VALUES (:id, :user_id, :month, :year, :limit_amount, :month_date, :created_at, :updated_at)
ON CONFLICT (user_id, month, year)
DO UPDATE SET limit_amount = EXCLUDED.limit_amount, updated_at = EXCLUDED.updated_at`

	queryDeleteBudget = `
DELETE FROM monthly_budgets
    WHERE user_id = :user_id AND month = :month AND year = :year`

	queryGetCategoryBudget = `
SELECT id, user_id, category, month, year, amount, created_at, updated_at
FROM category_budgets
    WHERE user_id = :user_id AND category = :category AND month = :month AND year = :year`

	queryGetAllCategoryBudgetsForMonth = `
SELECT id, user_id, category, month, year, amount, created_at, updated_at
FROM category_budgets
    WHERE user_id = :user_id AND month = :month AND year = :year
ORDER BY category`

	queryUpsertCategoryBudget = `
INSERT INTO category_budgets (id, user_id, category, month, year, amount, created_at, updated_at)
VALUES (:id, :user_id, :category, :month, :year, :amount, :created_at, :updated_at)
ON CONFLICT (user_id, category, month, year)
DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`

	queryDeleteCategoryBudget = `
DELETE FROM category_budgets
    WHERE user_id = :user_id AND category = :category AND month = :month AND year = :year`

	queryDeleteAllCategoryBudgetsForMonth = `
DELETE FROM category_budgets
    WHERE user_id = :user_id AND month = :month AND year = :year`

	queryAppendBudgetHistory = `
INSERT INTO budget_history (id, user_id, action, scope, category, amount, date, description, created_at)
VALUES (:id, :user_id, :action, :scope, :category, :amount, :date, :description, :created_at)`

	queryListBudgetHistory = `
SELECT id, user_id, action, scope, category, amount, date, description, created_at
FROM budget_history
    WHERE user_id = :user_id
ORDER BY created_at DESC
LIMIT :limit`
)
