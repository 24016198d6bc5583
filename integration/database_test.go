//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestAdlensWithMySQL tests the adlens CLI with a MySQL backend.
func TestAdlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "adlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/adlens?parseTime=true", host, port.Port())

	env := []string{
		"ADLENS_SNAPSHOT_BACKEND=mysql",
		"ADLENS_SNAPSHOT_DB_CONNECT=" + connStr,
		"ADLENS_ANALYSIS_BACKEND=mysql",
		"ADLENS_ANALYSIS_DB_CONNECT=" + connStr,
	}

	runBackendSuite(t, env)
}

// TestAdlensWithPostgres tests the adlens CLI with a PostgreSQL backend.
func TestAdlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	env := []string{
		"ADLENS_SNAPSHOT_BACKEND=postgresql",
		"ADLENS_SNAPSHOT_DB_CONNECT=" + connStr,
		"ADLENS_ANALYSIS_BACKEND=postgresql",
		"ADLENS_ANALYSIS_DB_CONNECT=" + connStr,
	}

	runBackendSuite(t, env)
}

// runBackendSuite exercises the snapshot and analysis stores against the
// configured backend: clear both, run tracked risk and attribution analyses
// (the second risk run served from the snapshot store), then check both
// statuses.
func runBackendSuite(t *testing.T, env []string) {
	ws := writeWorkspaceFixture(t)

	// Run adlens snapshot clear
	err := runAdlensCommand(t, env, "snapshot", "clear")
	require.NoError(t, err)

	// Run adlens analysis clear
	err = runAdlensCommand(t, env, "analysis", "clear")
	require.NoError(t, err)

	// Run adlens risk (cold, computes and stores the report)
	err = runAdlensCommand(t, env, "risk", "--limit", "5", ws)
	require.NoError(t, err)

	// Run adlens risk again (warm, served from the snapshot store)
	err = runAdlensCommand(t, env, "risk", "--limit", "5", ws)
	require.NoError(t, err)

	// Run adlens attribution (records channel credit rows)
	err = runAdlensCommand(t, env, "attribution", ws)
	require.NoError(t, err)

	// Run adlens snapshot status
	err = runAdlensCommand(t, env, "snapshot", "status")
	require.NoError(t, err)

	// Run adlens analysis status
	err = runAdlensCommand(t, env, "analysis", "status")
	require.NoError(t, err)
}
