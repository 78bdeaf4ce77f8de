package services

import (
	"context"

	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/repomanager"
)

// UserService exposes account lookup and self-deletion.
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Delete removes the account identified by id, but only when the calling
// principal is that account. The existence check runs first so an absent id
// reports common.ErrNotFound before any policy decision.
func (s *UserService) Delete(ctx context.Context, principal *models.Principal, id int64) error {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := EnsureSelf(principal, id); err != nil {
		return err
	}

	return repo.Delete(ctx, id)
}
