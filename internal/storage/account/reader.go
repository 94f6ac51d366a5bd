package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

var _ storage.IAccountReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByName(ctx context.Context, name string) (*ledger.Account, error) {
	return r.find(ctx, name, false)
}

// List returns every account ordered by name.
func (r *Reader) List(ctx context.Context) ([]ledger.Account, error) {
	q := psql.Select(
		sm.Columns(columnExprs()...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("accounts: list: %w", err)
	}

	result := make([]ledger.Account, len(rows))
	for i, row := range rows {
		result[i] = *rowToAccount(row)
	}
	return result, nil
}

func (r *Reader) find(ctx context.Context, name string, forUpdate bool) (*ledger.Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnExprs()...),
		sm.From(tableName),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	found, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NotFoundError("account", name)
	}
	if err != nil {
		return nil, fmt.Errorf("accounts: find %q: %w", name, err)
	}
	return rowToAccount(found), nil
}

func columnExprs() []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = psql.Quote(c)
	}
	return out
}
