package tablestore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateTable_NoneBackend(t *testing.T) {
	err := MigrateTable(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "migrations are not supported for the none backend")
}

func TestMigrateTable_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 2")

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	out.Reset()
	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "already at the latest version")

	out.Reset()
	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, out.String(), "from version 2 to version 1")

	out.Reset()
	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, 0))
	assert.Contains(t, out.String(), "rolled back from version 1 to version 0")

	out.Reset()
	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, 0))
	assert.Contains(t, out.String(), "already at version 0")

	require.NoError(t, MigrateTable(&out, schema.SQLiteBackend, dbPath, 2))
}

func TestMigrateTable_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateTable(&bytes.Buffer{}, schema.SQLiteBackend, ":memory:", -1))
}

func TestStoreReopensMigratedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	require.NoError(t, MigrateTable(&bytes.Buffer{}, schema.SQLiteBackend, dbPath, 1))

	store, err := NewTableStore(schema.SQLiteBackend, dbPath, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.SchemaVersion, "opening a store applies pending migrations")
}
