package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

// PostgresRepository stores sessions in the sessions table and their
// membership in session_users. The primary key on (session_id, user_id)
// backs the no-duplicate-registration invariant at the store level.
//
// Multi-statement methods (Create, Update) run against whatever handle the
// repository was built over; callers that need atomicity build the
// repository over a transaction (see dbx.WithTx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) (*models.Session, error) {

	query :=
		`INSERT INTO sessions (name, date, description, teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		session.Name, session.Date, session.Description, session.TeacherID).
		Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.insertMembers(ctx, session.ID, session.Users); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	query :=
		`SELECT id, name, date, description, teacher_id, created_at, updated_at
		 FROM sessions
		 WHERE id = $1
		 `

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Name, &session.Date, &session.Description,
		&session.TeacherID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	users, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Users = users

	return session, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Session, error) {
	query :=
		`SELECT id, name, date, description, teacher_id, created_at, updated_at
		 FROM sessions
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Session{}
	byID := map[int64]*models.Session{}
	for rows.Next() {
		session := &models.Session{Users: []int64{}}
		if err := rows.Scan(&session.ID, &session.Name, &session.Date, &session.Description,
			&session.TeacherID, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, session)
		byID[session.ID] = session
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	memberRows, err := r.db.QueryContext(ctx, `SELECT session_id, user_id FROM session_users`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var sessionID, userID int64
		if err := memberRows.Scan(&sessionID, &userID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if session, ok := byID[sessionID]; ok {
			session.Users = append(session.Users, userID)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, session *models.Session) error {

	query :=
		`UPDATE sessions
		 SET name = $2, date = $3, description = $4, teacher_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		session.ID, session.Name, session.Date, session.Description, session.TeacherID).
		Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_users WHERE session_id = $1`, session.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return r.insertMembers(ctx, session.ID, session.Users)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	// session_users rows go with the session via ON DELETE CASCADE
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) members(ctx context.Context, sessionID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM session_users WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := []int64{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) insertMembers(ctx context.Context, sessionID int64, userIDs []int64) error {
	for _, userID := range userIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO session_users (session_id, user_id) VALUES ($1, $2)`,
			sessionID, userID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
