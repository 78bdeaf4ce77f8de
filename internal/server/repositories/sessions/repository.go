package sessions

import (
	"context"

	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

// Repository persists sessions together with their membership set.
// Create and Update write the whole entity: Update fully replaces the stored
// fields and membership rows, it is not a merge.
type Repository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	FindAll(ctx context.Context) ([]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id int64) error
}
