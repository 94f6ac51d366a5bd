package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Account is the API response model for an account.
type Account struct {
	Name            string `json:"name" doc:"Account name, its identity"`
	Type            string `json:"type" doc:"cash, bank, wallet or other"`
	Balance         string `json:"balance" doc:"Decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance when the account was created"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

type AccountResponse struct {
	Data Account `json:"data"`
}

func FromLedger(a ledger.Account) Account {
	return Account{
		Name:            a.Name,
		Type:            a.Type.String(),
		Balance:         a.Balance.String(),
		StartingBalance: a.StartingBalance.String(),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339Nano),
	}
}

// Ledger parses the wire form back into a ledger account.
func (a Account) Ledger() (ledger.Account, error) {
	out := ledger.Account{
		Name: a.Name,
		Type: ledger.AccountTypeForName(a.Type),
	}
	var err error
	if out.Balance, err = decimal.NewFromString(a.Balance); err != nil {
		return out, err
	}
	if out.StartingBalance, err = decimal.NewFromString(a.StartingBalance); err != nil {
		return out, err
	}
	if out.CreatedAt, err = time.Parse(time.RFC3339Nano, a.CreatedAt); err != nil {
		return out, err
	}
	return out, nil
}
