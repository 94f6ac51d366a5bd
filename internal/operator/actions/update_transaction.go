package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// UpdateTransaction replaces a transaction, moving balances from its old
// effect to its new one in the same write.
type UpdateTransaction struct {
	ID         uuid.UUID
	Payload    ledger.Payload
	Now        time.Time
	LockWindow time.Duration

	Result *ledger.Transaction
}

func (t *UpdateTransaction) Name() string {
	return "update-transaction"
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, t.ID)
	if err != nil {
		return err
	}
	current := *existing
	current.IsEditable = existing.EditableAt(t.Now, t.LockWindow)

	updated, err := ledger.Validate(t.Payload, &current, t.Now)
	if err != nil {
		return err
	}
	updated.UpdatedAt = t.Now

	if _, err := ledger.Mutate(ctx, writer.Account, existing, &updated); err != nil {
		return err
	}
	if err := writer.Transaction.Update(ctx, &updated); err != nil {
		return err
	}

	t.Result = &updated
	return nil
}
