package storage

import (
	"context"
	"errors"
)

var ErrWriterDone = errors.New("storage: writer already committed or rolled back")

// Tx is the unit of work behind a Writer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	tx          Tx
	done        bool
	Account     IAccountWriter
	Transaction ITransactionWriter
}

func NewWriter(tx Tx, account IAccountWriter, transaction ITransactionWriter) *Writer {
	return &Writer{
		tx:          tx,
		Account:     account,
		Transaction: transaction,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.done {
		return ErrWriterDone
	}
	w.done = true
	return w.tx.Commit(ctx)
}

// Rollback discards the writer's changes. Rolling back a finished writer is a
// no-op so it can be deferred unconditionally.
func (w *Writer) Rollback(ctx context.Context) error {
	if w.done {
		return nil
	}
	w.done = true
	return w.tx.Rollback(ctx)
}
