package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, COALESCE(code, ''), name, stock, minimum_stock, cost, average_cost, active_price,
	COALESCE(unit_id, ''), active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Un código repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, code, name, stock, minimum_stock, cost, average_cost, active_price, unit_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, nullIfEmpty(product.Code), product.Name, product.Stock, product.MinimumStock,
		product.Cost, product.AverageCost, product.ActivePrice, nullIfEmpty(product.UnitID),
		product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpdateStock persiste stock, cost y average_cost.
func (r *ProductRepo) UpdateStock(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET stock = $2, cost = $3, average_cost = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, product.ID, product.Stock, product.Cost, product.AverageCost, product.UpdatedAt)
	if err != nil {
		return mapWriteError("update product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product stock: %s no existe", product.ID)
	}
	return nil
}

// UpdateActivePrice replica el importe del precio activo en el producto.
func (r *ProductRepo) UpdateActivePrice(ctx context.Context, productID string, amount decimal.Decimal) error {
	query := `UPDATE products SET active_price = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, productID, amount, time.Now().UTC()); err != nil {
		return mapWriteError("update active price", err)
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	lim, off := pageArgs(limit, offset)
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Stock, &p.MinimumStock, &p.Cost, &p.AverageCost, &p.ActivePrice,
		&p.UnitID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
