package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// IAction is one unit of work performed inside a single storage write
// transaction. A returned error rolls the whole transaction back.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}
