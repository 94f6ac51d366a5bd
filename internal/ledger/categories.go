package ledger

var incomeCategories = []string{
	"Salary", "Freelance", "Investment", "Business", "Bonus", "Other Income",
}

var expenseCategories = []string{
	"Food", "Fuel", "Movie", "Medical", "Loan", "Shopping", "Bills", "Rent", "Travel",
	"Entertainment", "Education", "Utilities", "Insurance", "Maintenance", "Other Expense",
}

// Categories returns a copy of the allowed categories for a transaction type.
func Categories(t TransactionType) []string {
	switch t {
	case TypeIncome:
		return append([]string(nil), incomeCategories...)
	case TypeExpense:
		return append([]string(nil), expenseCategories...)
	case TypeTransfer:
		return []string{TransferCategory}
	}
	return nil
}

// IsAllowedCategory reports whether category belongs to t's list.
func IsAllowedCategory(t TransactionType, category string) bool {
	for _, c := range Categories(t) {
		if c == category {
			return true
		}
	}
	return false
}
