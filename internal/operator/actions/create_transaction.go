package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// CreateTransaction validates a payload, applies its balance effect and
// records it.
type CreateTransaction struct {
	Payload ledger.Payload
	Now     time.Time

	Result *ledger.Transaction
}

func (t *CreateTransaction) Name() string {
	return "create-transaction"
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	tx, err := ledger.Validate(t.Payload, nil, t.Now)
	if err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	tx.ID = id
	tx.CreatedAt = t.Now
	tx.UpdatedAt = t.Now

	if _, err := ledger.Mutate(ctx, writer.Account, nil, &tx); err != nil {
		return err
	}
	if err := writer.Transaction.Insert(ctx, &tx); err != nil {
		return err
	}

	t.Result = &tx
	return nil
}
