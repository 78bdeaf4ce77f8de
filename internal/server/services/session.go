package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/repomanager"
)

// sessionLocks serializes membership writes per session id. The repository's
// load-mutate-persist sequence is not atomic on its own: without this lock
// two concurrent registrations for the same (session, user) pair could both
// observe "not a member" and both persist.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *sessionLocks) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[int64]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// drop forgets the lock for a deleted session so the map does not grow
// without bound. Goroutines still waiting on the old mutex proceed against
// the already-deleted row and fail with not-found.
func (l *sessionLocks) drop(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, id)
}

// SessionService owns the bookable sessions and their membership sets.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	locks       sessionLocks
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m}
}

// Create persists a new session as given. Field validation happens at the
// API boundary, not here.
func (s *SessionService) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	var created *models.Session
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Sessions(tx).Create(ctx, session)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return created, nil
}

// GetByID returns the session or common.ErrNotFound; absence is an expected
// outcome, not a fault.
func (s *SessionService) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	return s.repomanager.Sessions(s.db).GetByID(ctx, id)
}

func (s *SessionService) FindAll(ctx context.Context) ([]*models.Session, error) {
	return s.repomanager.Sessions(s.db).FindAll(ctx)
}

// Update stores replacement under id, fully overwriting prior fields and
// membership. An absent id yields common.ErrNotFound.
func (s *SessionService) Update(ctx context.Context, id int64, replacement *models.Session) (*models.Session, error) {
	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	replacement.ID = id
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Sessions(tx).Update(ctx, replacement)
	})
	if err != nil {
		return nil, err
	}
	return replacement, nil
}

// Delete removes the session. An absent id yields common.ErrNotFound rather
// than a silent no-op.
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.locks.drop(id)
	return nil
}

// Participate registers userID to the session. It fails with
// common.ErrNotFound when the session or the user is absent and with
// common.ErrBadRequest when the user is already registered; nothing is
// persisted on failure. On success the member set grows by exactly one.
func (s *SessionService) Participate(ctx context.Context, sessionID, userID int64) error {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionsRepo := s.repomanager.Sessions(tx)

		session, err := sessionsRepo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if _, err := s.repomanager.Users(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		if session.HasUser(userID) {
			return common.ErrBadRequest
		}

		session.AddUser(userID)
		return sessionsRepo.Update(ctx, session)
	})
}

// NoLongerParticipate withdraws userID from the session. It fails with
// common.ErrNotFound when the session is absent and with
// common.ErrBadRequest when the user is not registered. On success the
// member set shrinks by exactly one.
func (s *SessionService) NoLongerParticipate(ctx context.Context, sessionID, userID int64) error {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionsRepo := s.repomanager.Sessions(tx)

		session, err := sessionsRepo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.HasUser(userID) {
			return common.ErrBadRequest
		}

		session.RemoveUser(userID)
		return sessionsRepo.Update(ctx, session)
	})
}
