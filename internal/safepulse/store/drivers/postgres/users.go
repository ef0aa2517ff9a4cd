package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/pkg/idx"
)

type usersRepo struct {
	db  DBTX
	now func() time.Time
}

// Postgres keeps microseconds; truncating keeps returned values equal to
// what was written.
func (r *usersRepo) stamp() time.Time { return r.now().UTC().Truncate(time.Microsecond) }

const upsertUser = `
INSERT INTO users (id, phone, name, pin_digest, contacts, silent, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
ON CONFLICT (phone) DO UPDATE SET
    name       = EXCLUDED.name,
    pin_digest = EXCLUDED.pin_digest,
    contacts   = EXCLUDED.contacts,
    silent     = EXCLUDED.silent,
    updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at`

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) (domain.User, bool, error) {
	newID := idx.New().String()

	err := r.db.QueryRowContext(ctx, upsertUser,
		newID, u.Phone, u.Name, u.PINDigest, strings.Join(u.Contacts, " "), u.Silent, r.stamp(),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, false, err
	}
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()

	return u, u.ID == newID, nil
}

const userColumns = `id, phone, name, pin_digest, contacts, silent, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u        domain.User
		contacts string
	)
	if err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.PINDigest, &contacts, &u.Silent, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Contacts = strings.Fields(contacts)
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone))
}

func (r *usersRepo) UpdateProfile(
	ctx context.Context,
	phone, name string,
	contacts []string,
	silent bool,
) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $1, contacts = $2, silent = $3, updated_at = $4
		 WHERE phone = $5 RETURNING `+userColumns,
		name, strings.Join(contacts, " "), silent, r.stamp(), phone,
	))
}

func (r *usersRepo) UpdatePINDigest(ctx context.Context, phone, digest string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET pin_digest = $1, updated_at = $2 WHERE phone = $3`,
		digest, r.stamp(), phone,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
