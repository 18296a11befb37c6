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

type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	FindByUsername(ctx context.Context, username string) (*entity.Operator, error)
}

type operatorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOperatorRepository(db database.PgxIface, log *zap.Logger) OperatorRepository {
	return &operatorRepository{
		db:  db,
		log: log.With(zap.String("repository", "operator")),
	}
}

func (r *operatorRepository) Create(ctx context.Context, operator *entity.Operator) error {
	query := `
		INSERT INTO operators (id, username, password, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		operator.ID,
		operator.Username,
		operator.PasswordHash,
		operator.Role,
		operator.IsActive,
		operator.CreatedAt,
		operator.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("operator %s: %w", operator.Username, ErrDuplicateUser)
		}
		r.log.Error("Failed to create operator", zap.Error(err), zap.String("username", operator.Username))
		return fmt.Errorf("create operator %s: %w", operator.Username, err)
	}

	return nil
}

func (r *operatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *operatorRepository) FindByUsername(ctx context.Context, username string) (*entity.Operator, error) {
	return r.findOne(ctx, `WHERE username = $1`, username)
}

func (r *operatorRepository) findOne(ctx context.Context, where string, arg any) (*entity.Operator, error) {
	query := `SELECT id, username, password, role, is_active, created_at, updated_at FROM operators ` + where

	var op entity.Operator
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&op.ID,
		&op.Username,
		&op.PasswordHash,
		&op.Role,
		&op.IsActive,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find operator", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find operator: %w", err)
	}

	return &op, nil
}
