package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so that a Tx exposes exactly
// the same surface.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or
	// Rollback the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// UpsertUser inserts u, or replaces name, PIN digest, contacts and
	// silent flag of the record holding u.Phone, in one atomic statement.
	// The returned user carries the stored id and timestamps; created
	// reports which branch ran. The caller's ID, CreatedAt and UpdatedAt
	// are ignored.
	UpsertUser(ctx context.Context, u domain.User) (stored domain.User, created bool, err error)

	// GetUserByPhone is an exact match on the normalized phone.
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// UpdateProfile replaces name, contacts and silent and bumps updated_at.
	UpdateProfile(ctx context.Context, phone, name string, contacts []string, silent bool) (domain.User, error)

	// UpdatePINDigest sets pin_digest and bumps updated_at.
	UpdatePINDigest(ctx context.Context, phone, digest string) error

	// CountUsers returns the number of accounts.
	CountUsers(ctx context.Context) (int, error)
}
