package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y lista.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_cost, total_value, sale_id, note, created_by, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.UnitCost,
		movement.TotalValue, nullIfEmpty(movement.SaleID), nullIfEmpty(movement.Note),
		nullIfEmpty(movement.CreatedBy), movement.Date,
	)
	if err != nil {
		return mapWriteError("create stock movement", err)
	}
	return nil
}

// List devuelve los movimientos más recientes primero; productID vacío lista todos.
func (r *StockMovementRepo) List(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	lim, off := pageArgs(limit, offset)
	query := `
		SELECT id, product_id, type, quantity, unit_cost, total_value,
			COALESCE(sale_id::text, ''), COALESCE(note, ''), COALESCE(created_by, ''), date
		FROM stock_movements
		WHERE ($1 = '' OR product_id::text = $1)
		ORDER BY date DESC, seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost, &m.TotalValue,
		&m.SaleID, &m.Note, &m.CreatedBy, &m.Date,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
