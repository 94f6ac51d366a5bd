package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransferCategory is the category every transfer carries.
const TransferCategory = "Transfer"

// Account holds a balance identified by its name.
type Account struct {
	Name            string
	Type            AccountType
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
	CreatedAt       time.Time
}

// Transaction is a single ledger entry.
type Transaction struct {
	ID          uuid.UUID
	Seq         int64
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
	Division    Division
	Account     string
	ToAccount   string
	Date        time.Time
	IsEditable  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Accounts returns the account names the transaction touches.
func (t Transaction) Accounts() []string {
	if t.Type == TypeTransfer {
		return []string{t.Account, t.ToAccount}
	}
	return []string{t.Account}
}

// EditableAt reports whether the transaction may still be mutated at now.
// A zero lockWindow disables the time-based lock.
func (t Transaction) EditableAt(now time.Time, lockWindow time.Duration) bool {
	if !t.IsEditable {
		return false
	}
	if lockWindow <= 0 || t.CreatedAt.IsZero() {
		return true
	}
	return now.Sub(t.CreatedAt) < lockWindow
}

// Payload is a proposed transaction as submitted by a caller, before validation.
type Payload struct {
	Type        string
	Amount      string
	Description string
	Category    string
	Division    string
	Account     string
	ToAccount   string
	Date        *time.Time
}

// FilterSpec selects transactions for a query.
type FilterSpec struct {
	Period    Period
	Division  Division
	Category  string
	Type      TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// SummaryResult aggregates income and expense over a matching set.
type SummaryResult struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategorySummaryEntry totals one (category, type) group.
type CategorySummaryEntry struct {
	Category string
	Type     TransactionType
	Total    decimal.Decimal
	Count    int
}

// ChartPoint is one bucket of the income/expense series.
type ChartPoint struct {
	Bucket  time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Page is one page of a transaction query.
type Page struct {
	Transactions []Transaction
	Total        int
	Pages        int
	Page         int
	Limit        int
}
