package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

const priceColumns = `id, product_id, amount, active, start_time, end_time`

// PriceRepo historial de precios sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Create inserta una fila de precio. El índice único parcial impide dos precios activos por producto.
func (r *PriceRepo) Create(ctx context.Context, price *entity.Price) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}
	query := `
		INSERT INTO prices (id, product_id, amount, active, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, price.ID, price.ProductID, price.Amount, price.Active, price.StartTime, price.EndTime)
	if err != nil {
		return mapWriteError("insert price", err)
	}
	return nil
}

// GetActive devuelve el precio activo con start_time más reciente.
func (r *PriceRepo) GetActive(ctx context.Context, productID string) (*entity.Price, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `SELECT ` + priceColumns + ` FROM prices
		WHERE product_id = $1 AND active
		ORDER BY start_time DESC, seq DESC LIMIT 1`
	p, err := scanPrice(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active price: %w", err)
	}
	return p, nil
}

// DeactivateActive cierra los precios activos del producto.
func (r *PriceRepo) DeactivateActive(ctx context.Context, productID string, at time.Time) (int64, error) {
	query := `UPDATE prices SET active = FALSE, end_time = $2 WHERE product_id = $1 AND active`
	tag, err := r.q.Exec(ctx, query, productID, at)
	if err != nil {
		return 0, fmt.Errorf("deactivate prices: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List devuelve el historial más reciente primero.
func (r *PriceRepo) List(ctx context.Context, productID string, limit, offset int) ([]*entity.Price, error) {
	lim, off := pageArgs(limit, offset)
	query := `SELECT ` + priceColumns + ` FROM prices
		WHERE ($1 = '' OR product_id::text = $1)
		ORDER BY start_time DESC, seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Price
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPrice(row pgx.Row) (*entity.Price, error) {
	var p entity.Price
	if err := row.Scan(&p.ID, &p.ProductID, &p.Amount, &p.Active, &p.StartTime, &p.EndTime); err != nil {
		return nil, err
	}
	return &p, nil
}
