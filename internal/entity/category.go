package entity

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Category is one of the closed set of spending/income classifications the
// interpreter and the mobile client agree on. The names are user-facing
// Vietnamese labels and double as database keys, so they must never be
// renamed without a migration.
type Category string

const (
	CategoryFoodHome      Category = "Ăn uống"
	CategoryFoodOut       Category = "Ăn ngoài & Cafe"
	CategoryTransport     Category = "Di chuyển"
	CategoryHousing       Category = "Nhà ở"
	CategoryUtilities     Category = "Hóa đơn & Tiện ích"
	CategoryShopping      Category = "Mua sắm"
	CategoryClothing      Category = "Quần áo"
	CategoryBeauty        Category = "Làm đẹp"
	CategoryHealth        Category = "Sức khỏe"
	CategoryEducation     Category = "Giáo dục"
	CategoryEntertainment Category = "Giải trí"
	CategoryTravel        Category = "Du lịch"
	CategorySports        Category = "Thể thao"
	CategorySubscription  Category = "Đăng ký & Dịch vụ"
	CategoryServices      Category = "Dịch vụ"
	CategoryPets          Category = "Thú cưng"
	CategoryGifts         Category = "Quà tặng & Từ thiện"
	CategoryFamily        Category = "Gia đình"
	CategoryChildren      Category = "Con cái"
	CategoryInsurance     Category = "Bảo hiểm"
	CategoryTaxFees       Category = "Thuế & Phí"
	CategoryDebt          Category = "Trả nợ"
	CategoryOther         Category = "Khác"

	CategorySalary      Category = "Lương"
	CategoryBonus       Category = "Thưởng"
	CategoryInvestment  Category = "Đầu tư"
	CategoryOtherIncome Category = "Thu nhập khác"
)

var expenseCategories = []Category{
	CategoryFoodHome, CategoryFoodOut, CategoryTransport, CategoryHousing,
	CategoryUtilities, CategoryShopping, CategoryClothing, CategoryBeauty,
	CategoryHealth, CategoryEducation, CategoryEntertainment, CategoryTravel,
	CategorySports, CategorySubscription, CategoryServices, CategoryPets,
	CategoryGifts, CategoryFamily, CategoryChildren, CategoryInsurance,
	CategoryTaxFees, CategoryDebt, CategoryOther,
}

var incomeCategories = []Category{
	CategorySalary, CategoryBonus, CategoryInvestment, CategoryOtherIncome,
}

func ExpenseCategories() []Category {
	out := make([]Category, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}

func IncomeCategories() []Category {
	out := make([]Category, len(incomeCategories))
	copy(out, incomeCategories)
	return out
}

// AllCategories returns expense categories first, income categories last.
// The order matters to the matcher: it scans in declaration order and the
// expense set contains the longer compound names.
func AllCategories() []Category {
	out := make([]Category, 0, len(expenseCategories)+len(incomeCategories))
	out = append(out, expenseCategories...)
	out = append(out, incomeCategories...)
	return out
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range expenseCategories {
		if string(c) == category {
			return true
		}
	}
	return false
}

func IsValidIncomeCategory(category string) bool {
	for _, c := range incomeCategories {
		if string(c) == category {
			return true
		}
	}
	return false
}

func IsValidCategory(transactionType, category string) bool {
	switch TransactionType(transactionType) {
	case TransactionTypeIncome:
		return IsValidIncomeCategory(category)
	case TransactionTypeExpense:
		return IsValidExpenseCategory(category)
	default:
		return false
	}
}

// TypeForCategory reports which transaction type a category belongs to.
// Unknown names are treated as expenses, matching the catch-all "Khác".
func TypeForCategory(category string) TransactionType {
	if IsValidIncomeCategory(category) {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}
