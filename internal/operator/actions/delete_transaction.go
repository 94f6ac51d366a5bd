package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// DeleteTransaction retracts a transaction's balance effect and removes it.
type DeleteTransaction struct {
	ID         uuid.UUID
	Now        time.Time
	LockWindow time.Duration

	Result *ledger.Transaction
}

func (t *DeleteTransaction) Name() string {
	return "delete-transaction"
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, t.ID)
	if err != nil {
		return err
	}
	if !existing.EditableAt(t.Now, t.LockWindow) {
		return ledger.NewError(ledger.KindLocked, "id", "transaction "+t.ID.String()+" is locked")
	}

	if _, err := ledger.Mutate(ctx, writer.Account, existing, nil); err != nil {
		return err
	}
	if err := writer.Transaction.Delete(ctx, t.ID); err != nil {
		return err
	}

	t.Result = existing
	return nil
}
