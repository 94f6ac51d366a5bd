package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

type CreateAccount struct {
	Name            string
	Type            ledger.AccountType
	StartingBalance decimal.Decimal

	Result *ledger.Account
}

func (c *CreateAccount) Name() string {
	return "create-account"
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.Create(ctx, &storage.AccountCreate{
		Name:            c.Name,
		Type:            c.Type,
		StartingBalance: c.StartingBalance,
	})
	if err != nil {
		return err
	}

	c.Result = account
	return nil
}
