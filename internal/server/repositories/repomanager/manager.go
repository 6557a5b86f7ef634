package repomanager

import (
	"context"
	"database/sql"

	"github.com/avorobyov/taskkeeper/internal/dbx"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/authtokens"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/tasks"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run a set of repository calls inside one transaction by
// passing the same tx handle to each.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	AuthTokens(db dbx.DBTX) authtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
