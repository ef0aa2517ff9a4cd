package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
)

type txStore struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx, now: t.now} }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx
