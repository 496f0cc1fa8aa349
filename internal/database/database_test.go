package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "citizenai.db?_foreign_keys=on", sqliteDSN("citizenai.db"))
	assert.Equal(t, "citizenai.db?_foreign_keys=on", sqliteDSN("sqlite:///citizenai.db"))
	assert.Equal(t, "/var/lib/citizenai.db?_foreign_keys=on", sqliteDSN("sqlite:////var/lib/citizenai.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", sqliteDSN("file::memory:?cache=shared"))
}

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor("postgres://user:pw@localhost:5432/citizenai")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor("postgresql://user:pw@localhost:5432/citizenai")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor("citizenai.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = dialectorFor("  ")
	assert.Error(t, err)
}

func TestNewDatabaseSqliteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citizenai.db")

	db, err := NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, GetMigrator(db).Migrate())
	assert.True(t, db.Migrator().HasTable(&User{}))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
