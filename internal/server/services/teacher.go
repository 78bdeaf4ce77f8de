package services

import (
	"context"

	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/repomanager"
)

// TeacherService exposes the teacher catalogue; teachers are managed out of
// band (seed data), so there are only reads.
type TeacherService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewTeacherService(db dbx.DBTX, m repomanager.RepositoryManager) *TeacherService {
	return &TeacherService{db: db, repomanager: m}
}

func (s *TeacherService) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).GetByID(ctx, id)
}

func (s *TeacherService) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	return s.repomanager.Teachers(s.db).FindAll(ctx)
}
