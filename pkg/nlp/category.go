package nlp

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"ChiTieuBackend/internal/entity"
)

type categoryEntry struct {
	needle   string
	category string
	alias    bool
}

// CategoryMatcher maps free text onto the closed category set. A full
// canonical name always beats an alias, and among canonical hits the longest
// matched substring wins, so "Đăng ký & Dịch vụ" outranks the bare
// "Dịch vụ". Matches count only when delimited by non-letter characters on
// both sides; a category name buried inside a longer word is ignored.
type CategoryMatcher struct {
	canonical      []categoryEntry
	aliases        []categoryEntry
	expenseAliases []categoryEntry
}

// Aliases for the budget screens: things people call a category without
// using its official name.
var budgetAliasTable = map[string]entity.Category{
	"cafe":       entity.CategoryFoodOut,
	"cà phê":     entity.CategoryFoodOut,
	"caphe":      entity.CategoryFoodOut,
	"trà sữa":    entity.CategoryFoodOut,
	"ăn ngoài":   entity.CategoryFoodOut,
	"nhà hàng":   entity.CategoryFoodOut,
	"xăng":       entity.CategoryTransport,
	"đổ xăng":    entity.CategoryTransport,
	"grab":       entity.CategoryTransport,
	"taxi":       entity.CategoryTransport,
	"xe ôm":      entity.CategoryTransport,
	"gửi xe":     entity.CategoryTransport,
	"xe buýt":    entity.CategoryTransport,
	"đi chợ":     entity.CategoryFoodHome,
	"siêu thị":   entity.CategoryFoodHome,
	"thực phẩm":  entity.CategoryFoodHome,
	"tiền điện":  entity.CategoryUtilities,
	"tiền nước":  entity.CategoryUtilities,
	"internet":   entity.CategoryUtilities,
	"wifi":       entity.CategoryUtilities,
	"hóa đơn":    entity.CategoryUtilities,
	"tiền nhà":   entity.CategoryHousing,
	"thuê nhà":   entity.CategoryHousing,
	"nhà trọ":    entity.CategoryHousing,
	"netflix":    entity.CategorySubscription,
	"spotify":    entity.CategorySubscription,
	"thuốc":      entity.CategoryHealth,
	"khám bệnh":  entity.CategoryHealth,
	"bệnh viện":  entity.CategoryHealth,
	"học phí":    entity.CategoryEducation,
	"khóa học":   entity.CategoryEducation,
	"xem phim":   entity.CategoryEntertainment,
	"karaoke":    entity.CategoryEntertainment,
	"mỹ phẩm":    entity.CategoryBeauty,
	"spa":        entity.CategoryBeauty,
	"gym":        entity.CategorySports,
	"cầu lông":   entity.CategorySports,
	"vé máy bay": entity.CategoryTravel,
	"khách sạn":  entity.CategoryTravel,
	"shopee":     entity.CategoryShopping,
	"lazada":     entity.CategoryShopping,
	"tiki":       entity.CategoryShopping,
	"từ thiện":   entity.CategoryGifts,
	"quà":        entity.CategoryGifts,
	"thuế":       entity.CategoryTaxFees,
	"trả nợ":     entity.CategoryDebt,
	"vay":        entity.CategoryDebt,
	"chứng khoán": entity.CategoryInvestment,
	"cổ phiếu":    entity.CategoryInvestment,
}

// Extra aliases that only make sense when reading an expense sentence, where
// the dish or the meal implies the category.
var expenseAliasTable = map[string]entity.Category{
	"ăn sáng":  entity.CategoryFoodHome,
	"ăn trưa":  entity.CategoryFoodHome,
	"ăn tối":   entity.CategoryFoodHome,
	"cơm":      entity.CategoryFoodHome,
	"phở":      entity.CategoryFoodHome,
	"bún":      entity.CategoryFoodHome,
	"bánh mì":  entity.CategoryFoodHome,
	"nhậu":     entity.CategoryFoodOut,
	"bia":      entity.CategoryFoodOut,
	"trà đá":   entity.CategoryFoodOut,
	"xe máy":   entity.CategoryTransport,
	"sửa xe":   entity.CategoryTransport,
	"tiền lương": entity.CategorySalary,
	"nhận lương": entity.CategorySalary,
}

func NewCategoryMatcher() *CategoryMatcher {
	m := &CategoryMatcher{}

	for _, c := range entity.AllCategories() {
		for _, v := range canonicalVariants(string(c)) {
			m.canonical = append(m.canonical, categoryEntry{needle: v, category: string(c)})
		}
	}
	for needle, c := range budgetAliasTable {
		m.aliases = append(m.aliases, categoryEntry{needle: normalizeNeedle(needle), category: string(c), alias: true})
	}
	for needle, c := range expenseAliasTable {
		m.expenseAliases = append(m.expenseAliases, categoryEntry{needle: normalizeNeedle(needle), category: string(c), alias: true})
	}

	sortByNeedleLength(m.canonical)
	sortByNeedleLength(m.aliases)
	m.expenseAliases = append(m.expenseAliases, m.aliases...)
	sortByNeedleLength(m.expenseAliases)

	return m
}

// Match resolves a category in budget wording: canonical names first,
// then the budget alias table.
func (m *CategoryMatcher) Match(text string) (string, bool) {
	lowered := strings.ToLower(Normalize(text))
	if hit, ok := firstBoundedMatch(lowered, m.canonical); ok {
		return hit, true
	}
	return firstBoundedMatch(lowered, m.aliases)
}

// MatchExpense resolves a category in expense wording, consulting the
// expense alias table on top of everything Match knows.
func (m *CategoryMatcher) MatchExpense(text string) (string, bool) {
	lowered := strings.ToLower(Normalize(text))
	if hit, ok := firstBoundedMatch(lowered, m.canonical); ok {
		return hit, true
	}
	return firstBoundedMatch(lowered, m.expenseAliases)
}

// CanonicalNeedles lists the spellings of a category's official name,
// longest first. The description extractor strips these from the label;
// aliases stay, since "đổ xăng" is the description the user wants to read.
func (m *CategoryMatcher) CanonicalNeedles(category string) []string {
	var out []string
	for _, e := range m.canonical {
		if e.category == category {
			out = append(out, e.needle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func firstBoundedMatch(text string, entries []categoryEntry) (string, bool) {
	for _, e := range entries {
		if containsBounded(text, e.needle) {
			return e.category, true
		}
	}
	return "", false
}

// containsBounded reports whether needle occurs in text delimited by
// non-alphanumeric runes (or the string edges) on both sides.
func containsBounded(text, needle string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			return false
		}
		idx += offset
		if boundedAt(text, idx, len(needle)) {
			return true
		}
		offset = idx + len(needle)
	}
	return false
}

func boundedAt(text string, idx, n int) bool {
	if idx > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:idx])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end := idx + n; end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// canonicalVariants spells a canonical name the ways users actually type it:
// verbatim, with the ampersand written out, and with it dropped.
func canonicalVariants(name string) []string {
	base := normalizeNeedle(name)
	variants := []string{base}
	if strings.Contains(base, " & ") {
		variants = append(variants,
			strings.ReplaceAll(base, " & ", " và "),
			strings.ReplaceAll(base, " & ", " "),
		)
	}
	return variants
}

func normalizeNeedle(s string) string {
	return strings.ToLower(Normalize(s))
}

func sortByNeedleLength(entries []categoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].needle) > len(entries[j].needle)
	})
}
