// Package sqlconfig is the PostgreSQL storage engine built on bob.
package sqlconfig

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

type Engine struct {
	DB  *sql.DB
	bob bob.DB
}

var _ storage.Engine = (*Engine)(nil)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, env *config.Config) (*Engine, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return NewEngine(db), nil
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{DB: db, bob: bob.NewDB(db)}
}

// NewReader opens a read-only repeatable-read transaction so every query made
// through the reader sees the same snapshot.
func (e *Engine) NewReader(ctx context.Context) (*storage.Reader, error) {
	tx, err := e.bob.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	return storage.NewReader(account.NewReader(tx), transaction.NewReader(tx), tx.Rollback), nil
}

func (e *Engine) NewWriter(ctx context.Context) (*storage.Writer, error) {
	tx, err := e.bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin write: %w", err)
	}
	return storage.NewWriter(tx, account.NewWriter(tx), transaction.NewWriter(tx)), nil
}

func (e *Engine) Close() error {
	return e.DB.Close()
}
