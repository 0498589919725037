// Package containers starts throwaway Postgres and ClickHouse servers for
// integration tests
package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs req and returns host:port for the mapped port. The container
// is terminated on test cleanup.
func Start(t *testing.T, req tc.ContainerRequest, port string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

// Postgres returns a postgres:// url for a fresh server
func Postgres(t *testing.T) string {
	t.Helper()
	addr := Start(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "rapih",
			"POSTGRES_PASSWORD": "rapih",
			"POSTGRES_DB":       "rapih",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}, "5432/tcp")
	return "postgres://rapih:rapih@" + addr + "/rapih?sslmode=disable"
}

// Clickhouse returns a clickhouse:// url for a fresh server on the native port
func Clickhouse(t *testing.T) string {
	t.Helper()
	addr := Start(t, tc.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.8-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_USER":     "rapih",
			"CLICKHOUSE_PASSWORD": "rapih",
			"CLICKHOUSE_DB":       "rapih",
		},
		WaitingFor: wait.ForHTTP("/ping").WithPort("8123/tcp").WithStartupTimeout(2 * time.Minute),
	}, "9000/tcp")
	return "clickhouse://rapih:rapih@" + addr + "/rapih"
}
