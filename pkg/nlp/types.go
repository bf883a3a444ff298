package nlp

import "time"

// Mode tells the interpreter which screen launched it. It comes from the
// caller, never from the text, and takes precedence over keyword routing.
type Mode string

const (
	ModeChat           Mode = "chat"
	ModeBudget         Mode = "budget"
	ModeCategoryBudget Mode = "category_budget"
	ModeBulkExpense    Mode = "bulk_expense"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeChat, ModeBudget, ModeCategoryBudget, ModeBulkExpense:
		return true
	}
	return false
}

type OperationKind string

const (
	OpExpenseAdd    OperationKind = "expense_add"
	OpExpenseEdit   OperationKind = "expense_edit"
	OpExpenseDelete OperationKind = "expense_delete"

	OpBudgetSet      OperationKind = "budget_set"
	OpBudgetIncrease OperationKind = "budget_increase"
	OpBudgetDecrease OperationKind = "budget_decrease"
	OpBudgetDelete   OperationKind = "budget_delete"

	OpCategoryBudgetSet       OperationKind = "category_budget_set"
	OpCategoryBudgetDelete    OperationKind = "category_budget_delete"
	OpCategoryBudgetDeleteAll OperationKind = "category_budget_delete_all"
)

// Operation is one structured instruction derived from an utterance. It lives
// for a single interpretation cycle: built by the parser, validated by the
// budget rules, applied through the persistence services, then discarded.
type Operation struct {
	Kind        OperationKind
	Amount      int64
	Category    string
	Description string
	Date        time.Time
	Month       int
	Year        int
	TargetID    int64
}

// ResultType says what the interpreter decided to do with the utterance.
// Everything except ResultOperations defers to the caller: either the remote
// model (with the given prompt hint) or a "not understood" reply.
type ResultType string

const (
	ResultOperations    ResultType = "operations"
	ResultAnalysisQuery ResultType = "analysis_query"
	ResultInfoQuery     ResultType = "info_query"
	ResultFinanceQuery  ResultType = "finance_query"
	ResultNotUnderstood ResultType = "not_understood"
)

// Prompt hints forwarded verbatim to the remote model. The model resolves
// the depth of the answer; the interpreter only labels the request.
const (
	PrefixAnalysis = "[YÊU CẦU PHÂN TÍCH CHI TIẾT]"
	PrefixInfo     = "[CHỈ XEM THÔNG TIN]"
)

// ParseResult is the immutable outcome of one interpretation pass.
type ParseResult struct {
	Type       ResultType
	Operations []Operation
}
