package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

const uniqueViolation = "23505"

var _ storage.ITransactionWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return w.find(ctx, id, true)
}

// Insert stores tx and sets tx.Seq from the table's sequence.
func (w *Writer) Insert(ctx context.Context, tx *ledger.Transaction) error {
	q := psql.Insert(
		im.Into(tableName,
			"id", "type", "amount", "description", "category", "division",
			"account", "to_account", "date", "is_editable", "created_at", "updated_at"),
		im.Values(
			psql.Arg(tx.ID),
			psql.Arg(int16(tx.Type)),
			psql.Arg(tx.Amount),
			psql.Arg(tx.Description),
			psql.Arg(tx.Category),
			psql.Arg(int16(tx.Division)),
			psql.Arg(tx.Account),
			psql.Arg(toAccount(tx.ToAccount)),
			psql.Arg(tx.Date),
			psql.Arg(tx.IsEditable),
			psql.Arg(tx.CreatedAt),
			psql.Arg(tx.UpdatedAt),
		),
		im.Returning(psql.Quote("seq")),
	)
	seq, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return storage.ErrTransactionExists
		}
		return fmt.Errorf("transactions: insert %s: %w", tx.ID, err)
	}
	tx.Seq = seq
	return nil
}

func (w *Writer) Update(ctx context.Context, tx *ledger.Transaction) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("type").ToArg(int16(tx.Type)),
		um.SetCol("amount").ToArg(tx.Amount),
		um.SetCol("description").ToArg(tx.Description),
		um.SetCol("category").ToArg(tx.Category),
		um.SetCol("division").ToArg(int16(tx.Division)),
		um.SetCol("account").ToArg(tx.Account),
		um.SetCol("to_account").ToArg(toAccount(tx.ToAccount)),
		um.SetCol("date").ToArg(tx.Date),
		um.SetCol("is_editable").ToArg(tx.IsEditable),
		um.SetCol("updated_at").ToArg(tx.UpdatedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))),
		um.Returning(psql.Quote("id")),
	)
	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.NotFoundError("transaction", tx.ID.String())
	}
	if err != nil {
		return fmt.Errorf("transactions: update %s: %w", tx.ID, err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Returning(psql.Quote("id")),
	)
	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.NotFoundError("transaction", id.String())
	}
	if err != nil {
		return fmt.Errorf("transactions: delete %s: %w", id, err)
	}
	return nil
}
