// Package sqlite provides the persistent article index backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.ArticleStore:
// fetched articles, their chunks and chunk embeddings survive between sessions
// when index.persist is enabled, and the in-memory vector index is rebuilt
// from the stored embeddings at startup.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at $XDG_DATA_HOME/newsum/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
