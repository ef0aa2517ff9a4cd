package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/pkg/idx"
)

type usersRepo struct {
	db  DBTX
	now func() time.Time
}

const upsertUser = `
INSERT INTO users (id, phone, name, pin_digest, contacts, silent, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (phone) DO UPDATE SET
    name       = excluded.name,
    pin_digest = excluded.pin_digest,
    contacts   = excluded.contacts,
    silent     = excluded.silent,
    updated_at = excluded.updated_at
RETURNING id, created_at, updated_at`

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) (domain.User, bool, error) {
	newID := idx.New().String()
	now := r.now()

	err := r.db.QueryRowContext(ctx, upsertUser,
		newID, u.Phone, u.Name, u.PINDigest, joinContacts(u.Contacts), u.Silent, formatTime(now), formatTime(now),
	).Scan(&u.ID, sqlTime{&u.CreatedAt}, sqlTime{&u.UpdatedAt})
	if err != nil {
		return domain.User{}, false, err
	}

	return u, u.ID == newID, nil
}

const getUserByPhone = `
SELECT id, phone, name, pin_digest, contacts, silent, created_at, updated_at
FROM users WHERE phone = ?`

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	var (
		u        domain.User
		contacts string
	)
	err := r.db.QueryRowContext(ctx, getUserByPhone, phone).Scan(
		&u.ID, &u.Phone, &u.Name, &u.PINDigest, &contacts, &u.Silent, sqlTime{&u.CreatedAt}, sqlTime{&u.UpdatedAt},
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Contacts = splitContacts(contacts)
	return u, nil
}

const updateProfile = `
UPDATE users SET name = ?, contacts = ?, silent = ?, updated_at = ?
WHERE phone = ?
RETURNING id, phone, name, pin_digest, contacts, silent, created_at, updated_at`

func (r *usersRepo) UpdateProfile(
	ctx context.Context,
	phone, name string,
	contacts []string,
	silent bool,
) (domain.User, error) {
	var (
		u      domain.User
		stored string
	)
	err := r.db.QueryRowContext(ctx, updateProfile,
		name, joinContacts(contacts), silent, formatTime(r.now()), phone,
	).Scan(&u.ID, &u.Phone, &u.Name, &u.PINDigest, &stored, &u.Silent, sqlTime{&u.CreatedAt}, sqlTime{&u.UpdatedAt})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Contacts = splitContacts(stored)
	return u, nil
}

const updatePINDigest = `UPDATE users SET pin_digest = ?, updated_at = ? WHERE phone = ?`

func (r *usersRepo) UpdatePINDigest(ctx context.Context, phone, digest string) error {
	res, err := r.db.ExecContext(ctx, updatePINDigest, digest, formatTime(r.now()), phone)
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
