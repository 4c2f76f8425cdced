// Package repomanager hands out repositories bound to a connection or a
// transaction, and owns the store's lifecycle (migrations, close).
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn is the non-transactional handle to pass to the factories.
	Conn() dbx.DBTX
	Transactor() dbx.Transactor
	Accounts(db dbx.DBTX) accounts.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Close() error
}

// MemoryDSN selects the in-memory store instead of PostgreSQL.
const MemoryDSN = "memory"

// New picks the implementation for dsn.
func New(dsn string) (RepositoryManager, error) {
	if dsn == MemoryDSN {
		return NewMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(dsn)
}
