package teachers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query :=
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM teachers
		 WHERE id = $1
		 `

	teacher := &models.Teacher{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&teacher.ID, &teacher.FirstName, &teacher.LastName,
		&teacher.CreatedAt, &teacher.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return teacher, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	query :=
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM teachers
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Teacher{}
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(&teacher.ID, &teacher.FirstName, &teacher.LastName,
			&teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
