package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock persiste stock, cost y average_cost.
	UpdateStock(ctx context.Context, product *entity.Product) error
	UpdateActivePrice(ctx context.Context, productID string, amount decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
