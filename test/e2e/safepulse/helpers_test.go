package safepulse_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/safepulse/pkg/sossdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared fixtures for the end-to-end tests. The image
 * is built once per run and every test gets a fresh container with an
 * empty SQLite database and the simulated SMS notifier.
 */

const (
	testImageName = "safepulse-test:latest"
	sessionSecret = "e2e-session-secret-e2e-session-secret"

	userName  = "Asha"
	userPhone = "+91 98765 43210"
	userPIN   = "1234"
)

var userContacts = []string{"9123456789", "9000000001"}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building SafePulse Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up SafePulse Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/safepulse/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupContainer starts the service and returns a client pointed at it.
func setupContainer(t *testing.T) *sossdk.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"DATABASE_URL":   "/data/safepulse.db",
			"SESSION_SECRET": sessionSecret,
			"SMS_PROVIDER":   "auto",
			"ENV":            "test",
			"LOG_LEVEL":      "info",
			"LOG_FORMAT":     "json",
		},
		WaitingFor: wait.ForHTTP("/health").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return sossdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// signup registers the default user and returns its access token.
func signup(t *testing.T, c *sossdk.Client) string {
	t.Helper()

	res, err := c.Signup(t.Context(), sossdk.SignupRequest{
		Name:     userName,
		Phone:    userPhone,
		PIN:      userPIN,
		Contacts: userContacts,
	})
	require.NoError(t, err)
	require.Equal(t, "created", res.Status)
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func requireAPIError(t *testing.T, err error, want *sossdk.APIError) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, want, "got %v", err)
}
