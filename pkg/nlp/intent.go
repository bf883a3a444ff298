package nlp

import "strings"

// CommandFamily is the coarse routing decision for an utterance. The parser
// picks the family first, then runs the family's own extraction routine.
type CommandFamily string

const (
	FamilyExpenseAdd    CommandFamily = "expense_add"
	FamilyExpenseEdit   CommandFamily = "expense_edit"
	FamilyExpenseDelete CommandFamily = "expense_delete"

	FamilyBudgetMutation CommandFamily = "budget_mutation"
	FamilyBudgetDelete   CommandFamily = "budget_delete"

	FamilyCategoryBudgetMutation  CommandFamily = "category_budget_mutation"
	FamilyCategoryBudgetDelete    CommandFamily = "category_budget_delete"
	FamilyCategoryBudgetDeleteAll CommandFamily = "category_budget_delete_all"

	FamilyAnalysisQuery CommandFamily = "analysis_query"
	FamilyInfoQuery     CommandFamily = "info_query"
	FamilyFinanceQuery  CommandFamily = "finance_query"
	FamilyUnknown       CommandFamily = "unknown"
)

var (
	deleteVerbs   = []string{"xóa", "xoá"}
	editVerbs     = []string{"sửa", "thay đổi"}
	increaseVerbs = []string{"tăng", "nâng", "cộng"}
	decreaseVerbs = []string{"giảm", "hạ", "trừ", "bớt", "cắt"}
	setVerbs      = []string{"thêm", "đặt", "thiết lập", "sửa", "thay đổi"}

	deleteAllWords = []string{"tất cả", "hết"}
	budgetWords    = []string{"ngân sách", "hạn mức"}

	analysisWords = []string{
		"phân tích", "tư vấn", "đánh giá", "so sánh",
		"xu hướng", "dự báo", "nhận xét", "góp ý",
	}
	financeQueryWords = []string{
		"chi tiêu", "thu nhập", "đã chi", "đã tiêu", "tổng chi", "tổng thu",
		"báo cáo", "thống kê", "còn lại", "bao nhiêu tiền", "tình hình tài chính",
	}
)

// intentRule is one row of the routing table. Rows are evaluated top to
// bottom; the first row whose mode and predicate both hold wins. The order
// encodes the precedence: mode flag, then delete verbs, then mutation verbs,
// then query fallbacks.
type intentRule struct {
	name   string
	modes  []Mode
	match  func(text string) bool
	family CommandFamily
}

var intentRules = []intentRule{
	{"budget-delete", []Mode{ModeBudget}, hasDeleteVerb, FamilyBudgetDelete},
	{"budget-mutation", []Mode{ModeBudget}, hasMutationVerb, FamilyBudgetMutation},
	{"budget-set-with-amount", []Mode{ModeBudget}, hasBudgetAmount, FamilyBudgetMutation},
	{"budget-analysis", []Mode{ModeBudget}, hasAnalysisWord, FamilyAnalysisQuery},
	{"budget-info", []Mode{ModeBudget}, matchAny, FamilyInfoQuery},

	{"category-delete-all", []Mode{ModeCategoryBudget, ModeBulkExpense}, isDeleteAll, FamilyCategoryBudgetDeleteAll},
	{"category-delete", []Mode{ModeCategoryBudget}, hasDeleteVerb, FamilyCategoryBudgetDelete},
	{"category-mutation", []Mode{ModeCategoryBudget}, matchAny, FamilyCategoryBudgetMutation},

	{"bulk-expense-delete", []Mode{ModeBulkExpense}, hasDeleteVerb, FamilyExpenseDelete},
	{"bulk-expense-edit", []Mode{ModeBulkExpense}, hasEditVerb, FamilyExpenseEdit},
	{"bulk-expense-add", []Mode{ModeBulkExpense}, matchAny, FamilyExpenseAdd},

	{"chat-budget-delete", []Mode{ModeChat}, allOf(hasBudgetWord, hasDeleteVerb), FamilyBudgetDelete},
	{"chat-budget-mutation", []Mode{ModeChat}, allOf(hasBudgetWord, hasMutationVerb), FamilyBudgetMutation},
	{"chat-expense-delete", []Mode{ModeChat}, hasDeleteVerb, FamilyExpenseDelete},
	{"chat-expense-edit", []Mode{ModeChat}, allOf(hasEditVerb, hasIDToken), FamilyExpenseEdit},
	{"chat-analysis", []Mode{ModeChat}, hasAnalysisWord, FamilyAnalysisQuery},
	{"chat-expense-add", []Mode{ModeChat}, hasExpenseAmount, FamilyExpenseAdd},
	{"chat-finance-query", []Mode{ModeChat}, hasFinanceQueryWord, FamilyFinanceQuery},
	{"chat-unknown", []Mode{ModeChat}, matchAny, FamilyUnknown},
}

// Classify routes an utterance to a command family. The mode flag comes from
// the caller and always outranks anything found in the text.
func Classify(text string, mode Mode) CommandFamily {
	lowered := strings.ToLower(Normalize(text))
	for _, r := range intentRules {
		if !r.appliesTo(mode) {
			continue
		}
		if r.match(lowered) {
			return r.family
		}
	}
	return FamilyUnknown
}

func (r intentRule) appliesTo(mode Mode) bool {
	for _, m := range r.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// BudgetPhrasing tells the rule engine how the user expressed a monthly
// budget figure: a plain value, a relative delta, or an absolute target
// reached through a movement verb.
type BudgetPhrasing string

const (
	PhrasingSet         BudgetPhrasing = "set"
	PhrasingIncrease    BudgetPhrasing = "increase"
	PhrasingDecrease    BudgetPhrasing = "decrease"
	PhrasingAbsoluteSet BudgetPhrasing = "absolute_set"
)

// ClassifyBudgetPhrasing applies the verb+preposition disambiguation:
// "tăng lên X" and "giảm xuống X" name the target value itself, while a bare
// "tăng X" or "giảm X" names the delta.
func ClassifyBudgetPhrasing(text string) BudgetPhrasing {
	lowered := strings.ToLower(Normalize(text))
	up := containsAnyBounded(lowered, increaseVerbs)
	down := containsAnyBounded(lowered, decreaseVerbs)
	switch {
	case up && containsBounded(lowered, "lên"):
		return PhrasingAbsoluteSet
	case down && containsBounded(lowered, "xuống"):
		return PhrasingAbsoluteSet
	case up:
		return PhrasingIncrease
	case down:
		return PhrasingDecrease
	default:
		return PhrasingSet
	}
}

func containsAnyBounded(text string, words []string) bool {
	for _, w := range words {
		if containsBounded(text, w) {
			return true
		}
	}
	return false
}

func hasDeleteVerb(text string) bool   { return containsAnyBounded(text, deleteVerbs) }
func hasEditVerb(text string) bool     { return containsAnyBounded(text, editVerbs) }
func hasBudgetWord(text string) bool   { return containsAnyBounded(text, budgetWords) }
func hasAnalysisWord(text string) bool { return containsAnyBounded(text, analysisWords) }

func hasMutationVerb(text string) bool {
	return containsAnyBounded(text, setVerbs) ||
		containsAnyBounded(text, increaseVerbs) ||
		containsAnyBounded(text, decreaseVerbs)
}

func isDeleteAll(text string) bool {
	return hasDeleteVerb(text) && containsAnyBounded(text, deleteAllWords)
}

func hasFinanceQueryWord(text string) bool {
	return containsAnyBounded(text, financeQueryWords)
}

func hasBudgetAmount(text string) bool {
	_, ok := ExtractBudgetAmount(text)
	return ok
}

func hasExpenseAmount(text string) bool {
	_, ok := ExtractAmount(text)
	return ok
}

func hasIDToken(text string) bool {
	return len(ExtractIDs(text)) > 0
}

func matchAny(string) bool { return true }

func allOf(preds ...func(string) bool) func(string) bool {
	return func(text string) bool {
		for _, p := range preds {
			if !p(text) {
				return false
			}
		}
		return true
	}
}
