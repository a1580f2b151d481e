package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/polygame/internal/client/config"
	"github.com/dmitrijs2005/polygame/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, "token", []byte("abc")))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	v, err := metadata.NewSQLiteRepository(db).Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestOpen_SQLiteDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: DriverSQLite, StoragePath: filepath.Join(t.TempDir(), "c.db")}

	repo, closer, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closer.Close()

	require.IsType(t, &metadata.SQLiteRepository{}, repo)
	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: "etcd"})
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{StorageDriver: DriverRedis, RedisAddr: "127.0.0.1:1"}

	_, _, err := Open(context.Background(), cfg)
	require.ErrorContains(t, err, "connect redis 127.0.0.1:1")
}
