package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const tableName = "accounts"

var columns = []string{"name", "type", "balance", "starting_balance", "created_at"}

// row is the accounts table as scanned by bob.
type row struct {
	Name            string          `db:"name"`
	Type            int16           `db:"type"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

func rowToAccount(r row) *ledger.Account {
	return &ledger.Account{
		Name:            r.Name,
		Type:            ledger.AccountType(r.Type),
		Balance:         r.Balance,
		StartingBalance: r.StartingBalance,
		CreatedAt:       r.CreatedAt,
	}
}
