package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ChiTieuBackend/internal/entity"
)

var (
	reHashID  = regexp.MustCompile(`#(\d+)`)
	reNamedID = regexp.MustCompile(`id:\s*(\d+)`)
	reVaWord  = regexp.MustCompile(`\s+và\s+`)
)

// ExtractIDs collects every transaction identifier written as "#42" or
// "id: 42", in order of appearance.
func ExtractIDs(text string) []int64 {
	lowered := strings.ToLower(Normalize(text))
	var ids []int64
	for _, re := range []*regexp.Regexp{reHashID, reNamedID} {
		for _, m := range re.FindAllStringSubmatch(lowered, -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
	}
	return ids
}

// Parser turns one utterance into a ParseResult. It is pure: no I/O, no
// clock reads, everything anchored to the caller's now.
type Parser struct {
	matcher *CategoryMatcher
}

func NewParser() *Parser {
	return &Parser{matcher: NewCategoryMatcher()}
}

func (p *Parser) Matcher() *CategoryMatcher {
	return p.matcher
}

func (p *Parser) Parse(text string, mode Mode, now time.Time) ParseResult {
	text = Normalize(text)

	switch Classify(text, mode) {
	case FamilyExpenseAdd:
		return operationsOrNotUnderstood(p.parseExpenses(text, now))
	case FamilyExpenseDelete:
		return operationsOrNotUnderstood(opsFromIDs(text, OpExpenseDelete))
	case FamilyExpenseEdit:
		return operationsOrNotUnderstood(opsFromIDs(text, OpExpenseEdit))
	case FamilyBudgetMutation:
		return operationsOrNotUnderstood(p.parseBudgetMutation(text, now))
	case FamilyBudgetDelete:
		month, year := ExtractMonthYear(text, now)
		return resultOps(Operation{Kind: OpBudgetDelete, Month: month, Year: year})
	case FamilyCategoryBudgetMutation:
		return operationsOrNotUnderstood(p.parseCategoryBudgets(text, now, false))
	case FamilyCategoryBudgetDelete:
		return operationsOrNotUnderstood(p.parseCategoryBudgets(text, now, true))
	case FamilyCategoryBudgetDeleteAll:
		month, year := ExtractMonthYear(text, now)
		return resultOps(Operation{Kind: OpCategoryBudgetDeleteAll, Month: month, Year: year})
	case FamilyAnalysisQuery:
		return ParseResult{Type: ResultAnalysisQuery}
	case FamilyInfoQuery:
		return ParseResult{Type: ResultInfoQuery}
	case FamilyFinanceQuery:
		return ParseResult{Type: ResultFinanceQuery}
	default:
		return ParseResult{Type: ResultNotUnderstood}
	}
}

// parseExpenses handles single sentences and bulk input alike. Lines carry
// their own date; within a line, "và", commas and semicolons separate items.
// A segment with no amount is dropped without failing the rest.
func (p *Parser) parseExpenses(text string, now time.Time) []Operation {
	var ops []Operation
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		date := ParseDate(line, now)
		for _, segment := range splitOnConnectors(line) {
			amount, ok := ExtractAmount(segment)
			if !ok {
				continue
			}
			category, ok := p.matcher.MatchExpense(segment)
			if !ok {
				category = string(entity.CategoryOther)
			}
			ops = append(ops, Operation{
				Kind:        OpExpenseAdd,
				Amount:      amount,
				Category:    category,
				Description: ExtractLabel(segment, category, p.matcher),
				Date:        date,
			})
		}
	}
	return ops
}

func (p *Parser) parseBudgetMutation(text string, now time.Time) []Operation {
	amount, ok := ExtractBudgetAmount(text)
	if !ok {
		return nil
	}
	month, year := ExtractMonthYear(text, now)

	var kind OperationKind
	switch ClassifyBudgetPhrasing(text) {
	case PhrasingIncrease:
		kind = OpBudgetIncrease
	case PhrasingDecrease:
		kind = OpBudgetDecrease
	default:
		// AbsoluteSet collapses to a plain set of the named target.
		kind = OpBudgetSet
	}
	return []Operation{{Kind: kind, Amount: amount, Month: month, Year: year}}
}

// parseCategoryBudgets splits the utterance into category segments. The
// operation type was decided once for the whole utterance by the classifier;
// deletion segments need only a category, mutation segments need a category
// and a positive amount. Segments missing either are silently dropped.
func (p *Parser) parseCategoryBudgets(text string, now time.Time, deletion bool) []Operation {
	month, year := ExtractMonthYear(text, now)

	var ops []Operation
	for _, segment := range splitOnSeparators(text) {
		category, ok := p.matcher.Match(segment)
		if !ok {
			continue
		}
		op := Operation{Kind: OpCategoryBudgetSet, Category: category, Month: month, Year: year}
		if deletion {
			op.Kind = OpCategoryBudgetDelete
		} else {
			amount, ok := ExtractBudgetAmount(segment)
			if !ok {
				continue
			}
			op.Amount = amount
		}
		ops = append(ops, op)
	}
	return ops
}

func opsFromIDs(text string, kind OperationKind) []Operation {
	var ops []Operation
	for _, id := range ExtractIDs(text) {
		ops = append(ops, Operation{Kind: kind, TargetID: id})
	}
	return ops
}

// splitOnConnectors breaks an expense line on "và", commas and semicolons.
func splitOnConnectors(line string) []string {
	joined := reVaWord.ReplaceAllString(line, ";")
	return splitOnSeparators(joined)
}

func splitOnSeparators(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resultOps(ops ...Operation) ParseResult {
	return ParseResult{Type: ResultOperations, Operations: ops}
}

func operationsOrNotUnderstood(ops []Operation) ParseResult {
	if len(ops) == 0 {
		return ParseResult{Type: ResultNotUnderstood}
	}
	return ParseResult{Type: ResultOperations, Operations: ops}
}
