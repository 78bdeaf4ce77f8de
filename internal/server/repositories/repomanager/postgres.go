package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/migrations"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/teachers"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Teachers(db dbx.DBTX) teachers.Repository {
	return teachers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
