package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/domain"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "safepulse",
				"POSTGRES_PASSWORD": "safepulse",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	base := fmt.Sprintf("postgres://safepulse:safepulse@%s:%s/ignored?sslmode=disable", host, port.Port())
	dsn, err := DSN(base, "postgres")
	require.NoError(t, err)

	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgresUsers(t *testing.T) {
	ctx := context.Background()
	s := startPostgres(t)

	u := domain.User{Phone: "9876543210", Name: "Asha", PINDigest: "d1", Contacts: []string{"9123456789", "9000000001"}}
	first, created, err := s.Users().UpsertUser(ctx, u)
	require.NoError(t, err)
	require.True(t, created)

	u.Name, u.PINDigest, u.Silent = "Asha K", "d2", true
	second, created, err := s.Users().UpsertUser(ctx, u)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := s.Users().GetUserByPhone(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "Asha K", got.Name)
	require.Equal(t, []string{"9123456789", "9000000001"}, got.Contacts)
	require.True(t, got.Silent)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().UpdateProfile(ctx, "9876543210", "A", []string{"9111111111", "9222222222"}, false); err != nil {
			return err
		}
		return tx.Users().UpdatePINDigest(ctx, "9876543210", "d3")
	})
	require.NoError(t, err)

	got, err = s.Users().GetUserByPhone(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "d3", got.PINDigest)
	require.False(t, got.Silent)

	_, err = s.Users().GetUserByPhone(ctx, "9999999999")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDSN(t *testing.T) {
	got, err := DSN("postgres://u:p@db:5432/old?sslmode=disable", "safepulse")
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@db:5432/safepulse?sslmode=disable", got)

	got, err = DSN("postgresql://u:p@db/keep", "")
	require.NoError(t, err)
	require.Equal(t, "postgresql://u:p@db/keep", got)

	require.True(t, IsURL("postgres://x"))
	require.False(t, IsURL("/data/safepulse.db"))
}
