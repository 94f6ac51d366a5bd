package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	Type        string `json:"type" doc:"income, expense or transfer"`
	Amount      string `json:"amount" doc:"Decimal amount, always positive"`
	Description string `json:"description" doc:"Free text description"`
	Category    string `json:"category" doc:"Category name"`
	Division    string `json:"division,omitempty" doc:"personal or office, absent on transfers"`
	Account     string `json:"account" doc:"Source account name"`
	ToAccount   string `json:"toAccount,omitempty" doc:"Destination account, transfers only"`
	Date        string `json:"date" doc:"RFC3339 transaction date"`
	IsEditable  bool   `json:"isEditable" doc:"Whether the transaction may still be changed"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt   string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Data Transaction `json:"data"`
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	Type        string `json:"type" doc:"income, expense or transfer"`
	Amount      string `json:"amount" doc:"Decimal amount greater than zero"`
	Description string `json:"description,omitempty" doc:"Free text description"`
	Category    string `json:"category,omitempty" doc:"Category, ignored for transfers"`
	Division    string `json:"division,omitempty" doc:"personal or office, defaults to personal"`
	Account     string `json:"account,omitempty" doc:"Source account name"`
	ToAccount   string `json:"toAccount,omitempty" doc:"Destination account, transfers only"`
	Date        string `json:"date,omitempty" doc:"YYYY-MM-DD or RFC3339, defaults to now"`
}

// FromLedger renders tx in its wire form.
func FromLedger(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Type:        tx.Type.String(),
		Amount:      tx.Amount.String(),
		Description: tx.Description,
		Category:    tx.Category,
		Division:    tx.Division.String(),
		Account:     tx.Account,
		ToAccount:   tx.ToAccount,
		Date:        tx.Date.Format(time.RFC3339Nano),
		IsEditable:  tx.IsEditable,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// FromLedgerList renders txs, never returning nil.
func FromLedgerList(txs []ledger.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = FromLedger(tx)
	}
	return out
}

// Ledger parses the wire form back into a ledger transaction.
func (t Transaction) Ledger() (ledger.Transaction, error) {
	var (
		tx  ledger.Transaction
		err error
	)
	if tx.ID, err = uuid.FromString(t.ID); err != nil {
		return tx, err
	}
	if tx.Type, err = ledger.ParseTransactionType(t.Type); err != nil {
		return tx, err
	}
	if tx.Amount, err = decimal.NewFromString(t.Amount); err != nil {
		return tx, err
	}
	if tx.Division, err = ledger.ParseDivision(t.Division); err != nil {
		return tx, err
	}
	if tx.Date, err = time.Parse(time.RFC3339Nano, t.Date); err != nil {
		return tx, err
	}
	if tx.CreatedAt, err = time.Parse(time.RFC3339Nano, t.CreatedAt); err != nil {
		return tx, err
	}
	if tx.UpdatedAt, err = time.Parse(time.RFC3339Nano, t.UpdatedAt); err != nil {
		return tx, err
	}
	tx.Description = t.Description
	tx.Category = t.Category
	tx.Account = t.Account
	tx.ToAccount = t.ToAccount
	tx.IsEditable = t.IsEditable
	return tx, nil
}

// Payload converts the body into an unvalidated ledger payload.
func (b TransactionBody) Payload() (ledger.Payload, error) {
	date, err := common.ParseDate(b.Date, false)
	if err != nil {
		return ledger.Payload{}, common.BadRequest("date", err)
	}
	return ledger.Payload{
		Type:        b.Type,
		Amount:      b.Amount,
		Description: b.Description,
		Category:    b.Category,
		Division:    b.Division,
		Account:     b.Account,
		ToAccount:   b.ToAccount,
		Date:        date,
	}, nil
}

// NewBody is the inverse of Payload.
func NewBody(p ledger.Payload) TransactionBody {
	b := TransactionBody{
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		Category:    p.Category,
		Division:    p.Division,
		Account:     p.Account,
		ToAccount:   p.ToAccount,
	}
	if p.Date != nil {
		b.Date = p.Date.Format(time.RFC3339Nano)
	}
	return b
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, common.BadRequest("id", err)
	}
	return id, nil
}
