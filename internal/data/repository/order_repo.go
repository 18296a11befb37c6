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

type OrderRepository interface {
	// Create stores the order with all its lines in one transaction.
	// A seat already sold for the session yields ErrSeatAlreadySold.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context) ([]*entity.Order, error)
	FindPage(ctx context.Context, sessionID *uuid.UUID, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, sessionID *uuid.UUID) (int64, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func runInTx(ctx context.Context, db database.PgxIface, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	err := runInTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, code, session_id, full_count, half_count, total, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID,
			order.Code,
			order.SessionID,
			order.FullCount,
			order.HalfCount,
			order.Total,
			order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, t := range order.Tickets {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_tickets (id, order_id, session_id, seat_row, seat_column, fare_tier, unit_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				t.ID, order.ID, t.SessionID, t.SeatRow, t.SeatColumn, t.FareTier, t.UnitPrice,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("seat %d-%d: %w", t.SeatRow, t.SeatColumn, ErrSeatAlreadySold)
				}
				return fmt.Errorf("insert order ticket: %w", err)
			}
		}

		for _, s := range order.Snacks {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_snacks (id, order_id, snack_id, name, quantity, unit_price, subtotal)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, order.ID, s.SnackID, s.Name, s.Quantity, s.UnitPrice, s.Subtotal,
			)
			if err != nil {
				return fmt.Errorf("insert order snack: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSeatAlreadySold) {
			r.log.Warn("Order rejected, seat already sold",
				zap.Error(err),
				zap.String("session_id", order.SessionID.String()))
		} else {
			r.log.Error("Failed to create order",
				zap.Error(err),
				zap.String("order_code", order.Code),
				zap.String("session_id", order.SessionID.String()))
		}
		return fmt.Errorf("create order %s: %w", order.Code, err)
	}

	return nil
}

const orderColumns = `id, code, session_id, full_count, half_count, total, created_at`

func scanOrder(row pgx.Row, order *entity.Order) error {
	return row.Scan(
		&order.ID,
		&order.Code,
		&order.SessionID,
		&order.FullCount,
		&order.HalfCount,
		&order.Total,
		&order.CreatedAt,
	)
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order entity.Order
	err := scanOrder(r.db.QueryRow(ctx, query, id), &order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}

	if err := r.loadLines(ctx, []*entity.Order{&order}); err != nil {
		return nil, err
	}

	return &order, nil
}

// FindAll returns every order with its lines, oldest first.
func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	orders, err := r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// FindPage returns orders newest first, optionally for one session.
func (r *orderRepository) FindPage(ctx context.Context, sessionID *uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::uuid IS NULL OR session_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.query(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, sessionID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE ($1::uuid IS NULL OR session_id = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		var order entity.Order
		if err := scanOrder(rows, &order); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}

// loadLines attaches ticket and snack lines with one query per line table.
func (r *orderRepository) loadLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Tickets = []entity.OrderTicket{}
		o.Snacks = []entity.OrderSnack{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, session_id, seat_row, seat_column, fare_tier, unit_price
		FROM order_tickets
		WHERE order_id = ANY($1::uuid[])
		ORDER BY seat_row, seat_column`, ids)
	if err != nil {
		r.log.Error("Failed to load order tickets", zap.Error(err))
		return fmt.Errorf("load order tickets: %w", err)
	}
	for rows.Next() {
		var t entity.OrderTicket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.SessionID, &t.SeatRow, &t.SeatColumn, &t.FareTier, &t.UnitPrice); err != nil {
			rows.Close()
			return fmt.Errorf("scan order ticket row: %w", err)
		}
		byID[t.OrderID].Tickets = append(byID[t.OrderID].Tickets, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load order tickets: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, order_id, snack_id, name, quantity, unit_price, subtotal
		FROM order_snacks
		WHERE order_id = ANY($1::uuid[])`, ids)
	if err != nil {
		r.log.Error("Failed to load order snacks", zap.Error(err))
		return fmt.Errorf("load order snacks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.OrderSnack
		if err := rows.Scan(&s.ID, &s.OrderID, &s.SnackID, &s.Name, &s.Quantity, &s.UnitPrice, &s.Subtotal); err != nil {
			return fmt.Errorf("scan order snack row: %w", err)
		}
		byID[s.OrderID].Snacks = append(byID[s.OrderID].Snacks, s)
	}

	return rows.Err()
}
