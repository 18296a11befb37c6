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

type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	FindValid(ctx context.Context, token string) (*entity.AuthToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForOperator(ctx context.Context, operatorID uuid.UUID) error
	// CleanExpired deletes tokens expired for more than a week and returns how many went.
	CleanExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, operator_id, token, user_agent, ip_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.OperatorID,
		token.Token,
		token.UserAgent,
		token.IPAddress,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create token",
			zap.Error(err),
			zap.String("operator_id", token.OperatorID.String()),
		)
		return fmt.Errorf("create token: %w", err)
	}

	return nil
}

func (r *tokenRepository) FindValid(ctx context.Context, token string) (*entity.AuthToken, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	query := `
		SELECT id, operator_id, token, user_agent, ip_address, expires_at, revoked_at, created_at
		FROM auth_tokens
		WHERE token = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
	`

	var t entity.AuthToken
	err = r.db.QueryRow(ctx, query, parsed).Scan(
		&t.ID,
		&t.OperatorID,
		&t.Token,
		&t.UserAgent,
		&t.IPAddress,
		&t.ExpiresAt,
		&t.RevokedAt,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid token", zap.Error(err))
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &t, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format")
	}

	query := `UPDATE auth_tokens SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`

	result, err := r.db.Exec(ctx, query, parsed)
	if err != nil {
		r.log.Error("Failed to revoke token", zap.Error(err))
		return fmt.Errorf("revoke token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("token not found or already revoked")
	}

	return nil
}

func (r *tokenRepository) RevokeAllForOperator(ctx context.Context, operatorID uuid.UUID) error {
	query := `UPDATE auth_tokens SET revoked_at = NOW() WHERE operator_id = $1 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, operatorID); err != nil {
		r.log.Error("Failed to revoke operator tokens",
			zap.Error(err),
			zap.String("operator_id", operatorID.String()),
		)
		return fmt.Errorf("revoke tokens of operator %s: %w", operatorID, err)
	}

	return nil
}

func (r *tokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM auth_tokens WHERE expires_at < NOW() - INTERVAL '7 days'`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired tokens", zap.Error(err))
		return 0, fmt.Errorf("clean expired tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
