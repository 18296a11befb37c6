package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-pos/internal/data/entity"
	"cinema-pos/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository stores screenings. Deleting one leaves its orders in place.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context) ([]*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, movie_id, room_id, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.MovieID,
		session.RoomID,
		session.StartsAt,
		session.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("room_id", session.RoomID.String()),
		)
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `SELECT id, movie_id, room_id, starts_at, created_at FROM sessions WHERE id = $1`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.RoomID,
		&session.StartsAt,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID", zap.Error(err), zap.String("session_id", id.String()))
		return nil, fmt.Errorf("find session by ID %s: %w", id, err)
	}

	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context) ([]*entity.Session, error) {
	query := `SELECT id, movie_id, room_id, starts_at, created_at FROM sessions ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*entity.Session{}
	for rows.Next() {
		var session entity.Session
		if err := rows.Scan(&session.ID, &session.MovieID, &session.RoomID, &session.StartsAt, &session.CreatedAt); err != nil {
			r.log.Error("Failed to scan session row", zap.Error(err))
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete session", zap.Error(err), zap.String("session_id", id.String()))
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id)
	}

	r.log.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}
