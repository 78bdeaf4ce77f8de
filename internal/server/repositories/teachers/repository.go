package teachers

import (
	"context"

	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	FindAll(ctx context.Context) ([]*models.Teacher, error)
}
