package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Account is the input for creating an account.
type Account struct {
	Name            string
	Type            ledger.AccountType
	StartingBalance decimal.Decimal
}

// AccountList is every account with their combined balance.
type AccountList struct {
	Accounts     []ledger.Account
	TotalBalance decimal.Decimal
}
