package storage

import (
	"context"
)

// Reader is a consistent view of the ledger. Close releases it.
type Reader struct {
	Accounts     IAccountReader
	Transactions ITransactionReader

	release func(ctx context.Context) error
}

func NewReader(accounts IAccountReader, transactions ITransactionReader, release func(ctx context.Context) error) *Reader {
	return &Reader{
		Accounts:     accounts,
		Transactions: transactions,
		release:      release,
	}
}

func (r *Reader) Close(ctx context.Context) error {
	if r.release == nil {
		return nil
	}
	release := r.release
	r.release = nil
	return release(ctx)
}
