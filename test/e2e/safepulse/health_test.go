package safepulse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	c := setupContainer(t)

	h, err := c.Health(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, "ok", h.DB)
	require.NotEmpty(t, h.Version)

	r, err := c.Ready(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", r.Status)
}
