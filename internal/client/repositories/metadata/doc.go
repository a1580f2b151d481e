// Package metadata provides the client's durable key/value storage.
//
// # Overview
//
// The Repository interface is the durable store the session layer persists
// to: string keys, byte values, surviving process restarts.
// Two implementations exist:
//
//   - SQLiteRepository: a "metadata" table in the local SQLite database,
//     over dbx.DBTX (*sql.DB or *sql.Tx). SetAll runs in one transaction.
//   - RedisRepository: keys under a prefix in Redis, for sharing one
//     session between several client processes. SetAll runs in MULTI/EXEC.
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.SetAll(ctx, map[string][]byte{"token": tok, "user": userJSON})
//	tok, _ := repo.Get(ctx, "token")
//	_ = repo.Delete(ctx, "token", "user")
package metadata
