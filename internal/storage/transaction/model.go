package transaction

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const tableName = "transactions"

var columns = []string{
	"id", "seq", "type", "amount", "description", "category", "division",
	"account", "to_account", "date", "is_editable", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID        `db:"id"`
	Seq         int64            `db:"seq"`
	Type        int16            `db:"type"`
	Amount      decimal.Decimal  `db:"amount"`
	Description string           `db:"description"`
	Category    string           `db:"category"`
	Division    int16            `db:"division"`
	Account     string           `db:"account"`
	ToAccount   null.Val[string] `db:"to_account"`
	Date        time.Time        `db:"date"`
	IsEditable  bool             `db:"is_editable"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

func rowToTransaction(r row) ledger.Transaction {
	return ledger.Transaction{
		ID:          r.ID,
		Seq:         r.Seq,
		Type:        ledger.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Division:    ledger.Division(r.Division),
		Account:     r.Account,
		ToAccount:   r.ToAccount.GetOrZero(),
		Date:        r.Date,
		IsEditable:  r.IsEditable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// toAccount stores an empty destination as NULL.
func toAccount(name string) null.Val[string] {
	if name == "" {
		return null.FromPtr[string](nil)
	}
	return null.From(name)
}
