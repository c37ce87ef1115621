//go:build database

package tablestore

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)
	return host, mapped.Port()
}

func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	store, err := NewTableStore(backend, connStr, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	n, err := store.Import(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := store.Load("")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)

	collections, err := store.Collections()
	require.NoError(t, err)
	assert.Equal(t, []schema.CollectionInfo{{Name: "cncf", Projects: 2}, {Name: "apache", Projects: 1}}, collections)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.SchemaVersion)
	assert.Equal(t, int64(3), status.TotalProjects)

	require.NoError(t, store.Clear())
	require.NoError(t, MigrateTable(&bytes.Buffer{}, backend, connStr, 0))
	require.NoError(t, MigrateTable(&bytes.Buffer{}, backend, connStr, -1))
}

func TestTableStoreWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "repocat",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	exerciseStore(t, schema.MySQLBackend, fmt.Sprintf("root:secret123@tcp(%s:%s)/repocat", host, port))
}

func TestTableStoreWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	exerciseStore(t, schema.PostgreSQLBackend, fmt.Sprintf("postgres://postgres@%s:%s/postgres?sslmode=disable", host, port))
}
