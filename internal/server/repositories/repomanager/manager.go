// Package repomanager hands out repositories over a shared database handle
// and owns schema migrations. Services that need atomicity across several
// statements request repositories over a transaction (dbx.WithTx).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/teachers"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Teachers(db dbx.DBTX) teachers.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
