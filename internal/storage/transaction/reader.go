package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

var _ storage.ITransactionReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.find(ctx, id, false)
}

// List returns transactions matching the filter in creation order. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *storage.TransactionFilter) ([]ledger.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnExprs()...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.Division != ledger.DivisionNone {
			queryMods = append(queryMods, sm.Where(psql.Quote("division").EQ(psql.Arg(int16(filter.Division)))))
		}
		if filter.Category != "" {
			queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(filter.Category))))
		}
		if filter.Type != 0 {
			queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(int16(filter.Type)))))
		}
		if filter.Start != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("date").GTE(psql.Arg(*filter.Start))))
		}
		if filter.End != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("date").LTE(psql.Arg(*filter.End))))
		}
	}
	queryMods = append(queryMods, sm.OrderBy(psql.Quote("seq")).Asc())

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("transactions: list: %w", err)
	}

	result := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

func (r *Reader) find(ctx context.Context, id uuid.UUID, forUpdate bool) (*ledger.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnExprs()...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	found, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFoundError("transaction", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("transactions: find %s: %w", id, err)
	}
	tx := rowToTransaction(found)
	return &tx, nil
}

func columnExprs() []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = psql.Quote(c)
	}
	return out
}
