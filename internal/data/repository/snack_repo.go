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

type SnackRepository interface {
	Create(ctx context.Context, snack *entity.SnackItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SnackItem, error)
	FindAll(ctx context.Context) ([]*entity.SnackItem, error)
	Update(ctx context.Context, snack *entity.SnackItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetStock overwrites the stock count. It does not compare against the
	// previous value.
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
	FindNegativeStock(ctx context.Context) ([]*entity.SnackItem, error)
}

type snackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSnackRepository(db database.PgxIface, log *zap.Logger) SnackRepository {
	return &snackRepository{
		db:  db,
		log: log.With(zap.String("repository", "snack")),
	}
}

const snackColumns = `id, name, description, unit_price, stock, created_at, updated_at`

func scanSnack(row pgx.Row, snack *entity.SnackItem) error {
	return row.Scan(
		&snack.ID,
		&snack.Name,
		&snack.Description,
		&snack.UnitPrice,
		&snack.Stock,
		&snack.CreatedAt,
		&snack.UpdatedAt,
	)
}

func (r *snackRepository) Create(ctx context.Context, snack *entity.SnackItem) error {
	query := `
		INSERT INTO snack_items (` + snackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		snack.ID,
		snack.Name,
		snack.Description,
		snack.UnitPrice,
		snack.Stock,
		snack.CreatedAt,
		snack.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create snack item", zap.Error(err), zap.String("name", snack.Name))
		return fmt.Errorf("create snack item %s: %w", snack.Name, err)
	}

	return nil
}

func (r *snackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SnackItem, error) {
	query := `SELECT ` + snackColumns + ` FROM snack_items WHERE id = $1`

	var snack entity.SnackItem
	err := scanSnack(r.db.QueryRow(ctx, query, id), &snack)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find snack item by ID", zap.Error(err), zap.String("snack_id", id.String()))
		return nil, fmt.Errorf("find snack item by ID %s: %w", id, err)
	}

	return &snack, nil
}

func (r *snackRepository) FindAll(ctx context.Context) ([]*entity.SnackItem, error) {
	return r.list(ctx, `SELECT `+snackColumns+` FROM snack_items ORDER BY name`)
}

func (r *snackRepository) FindNegativeStock(ctx context.Context) ([]*entity.SnackItem, error) {
	return r.list(ctx, `SELECT `+snackColumns+` FROM snack_items WHERE stock < 0 ORDER BY stock`)
}

func (r *snackRepository) list(ctx context.Context, query string) ([]*entity.SnackItem, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list snack items", zap.Error(err))
		return nil, fmt.Errorf("list snack items: %w", err)
	}
	defer rows.Close()

	snacks := []*entity.SnackItem{}
	for rows.Next() {
		var snack entity.SnackItem
		if err := scanSnack(rows, &snack); err != nil {
			r.log.Error("Failed to scan snack item row", zap.Error(err))
			return nil, fmt.Errorf("scan snack item row: %w", err)
		}
		snacks = append(snacks, &snack)
	}

	return snacks, rows.Err()
}

func (r *snackRepository) Update(ctx context.Context, snack *entity.SnackItem) error {
	query := `
		UPDATE snack_items
		SET name = $2, description = $3, unit_price = $4, stock = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		snack.ID,
		snack.Name,
		snack.Description,
		snack.UnitPrice,
		snack.Stock,
		snack.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update snack item", zap.Error(err), zap.String("snack_id", snack.ID.String()))
		return fmt.Errorf("update snack item %s: %w", snack.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snack item %s not found", snack.ID)
	}

	return nil
}

func (r *snackRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	query := `UPDATE snack_items SET stock = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, stock)
	if err != nil {
		r.log.Error("Failed to set snack stock",
			zap.Error(err),
			zap.String("snack_id", id.String()),
			zap.Int("stock", stock))
		return fmt.Errorf("set stock of snack item %s to %d: %w", id, stock, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snack item %s not found", id)
	}

	return nil
}

func (r *snackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM snack_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete snack item", zap.Error(err), zap.String("snack_id", id.String()))
		return fmt.Errorf("delete snack item %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snack item %s not found", id)
	}

	r.log.Info("Snack item deleted", zap.String("snack_id", id.String()))
	return nil
}
