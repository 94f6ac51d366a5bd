package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

var _ storage.IAccountWriter = (*Writer)(nil)

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

// AccountForUpdate reads an account and row-locks it until the transaction ends.
func (w *Writer) AccountForUpdate(ctx context.Context, name string) (*ledger.Account, error) {
	return w.find(ctx, name, true)
}

func (w *Writer) Create(ctx context.Context, create *storage.AccountCreate) (*ledger.Account, error) {
	q := psql.Insert(
		im.Into(tableName, "name", "type", "balance", "starting_balance"),
		im.Values(
			psql.Arg(create.Name),
			psql.Arg(int16(create.Type)),
			psql.Arg(create.StartingBalance),
			psql.Arg(create.StartingBalance),
		),
		im.Returning(columnExprs()...),
	)
	created, err := bob.One(ctx, w.tx, q, scan.StructMapper[row]())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, storage.ErrAccountExists
		}
		return nil, fmt.Errorf("accounts: create %q: %w", create.Name, err)
	}
	return rowToAccount(created), nil
}

func (w *Writer) UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("name").EQ(psql.Arg(name))),
		um.Returning(psql.Quote("name")),
	)
	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[string])
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.NotFoundError("account", name)
	}
	if err != nil {
		return fmt.Errorf("accounts: update balance %q: %w", name, err)
	}
	return nil
}
