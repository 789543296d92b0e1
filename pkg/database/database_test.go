package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{Path: MemoryPath}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":   {Data: []byte("CREATE INDEX i ON t(v);")},
		"001_create_t.sql":    {Data: []byte("CREATE TABLE t (v TEXT);")},
		"README.md":           {Data: []byte("ignored")},
		"nested/003_skip.sql": {Data: []byte("ignored")},
	}

	migrations, err := LoadMigrations(fsys)

	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_t", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "add_index", migrations[1].Name)
}

func TestLoadMigrations_Invalid(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{"init.sql": {Data: []byte("")}})
	assert.Error(t, err)

	_, err = LoadMigrations(fstest.MapFS{
		"001_a.sql": {Data: []byte("")},
		"1_b.sql":   {Data: []byte("")},
	})
	assert.ErrorContains(t, err, "duplicate migration version 1")
}

func TestMigrator_AppliesOnce(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_create_t.sql": {Data: []byte("CREATE TABLE t (v TEXT);")},
	}

	m := NewMigrator(db, zap.NewNop())
	require.NoError(t, m.RunMigrationsFS(ctx, fsys))
	require.NoError(t, m.RunMigrationsFS(ctx, fsys), "second run skips applied versions")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrator_FailedMigrationRollsBack(t *testing.T) {
	db := openMemory(t)
	fsys := fstest.MapFS{
		"001_broken.sql": {Data: []byte("CREATE TABLE ok (v TEXT); NOT SQL;")},
	}

	err := NewMigrator(db, zap.NewNop()).RunMigrationsFS(context.Background(), fsys)
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWithTransaction(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	_, err := db.Exec("CREATE TABLE t (v TEXT)")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO t (v) VALUES ('rolled back')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, db.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO t (v) VALUES ('kept')")
		return err
	}))

	var values []string
	rows, err := db.Query("SELECT v FROM t")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		values = append(values, v)
	}
	assert.Equal(t, []string{"kept"}, values)
}
