package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale, sus ítems y pagos.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	CreatePayment(ctx context.Context, payment *entity.Payment) error
	// GetByID devuelve la venta con ítems y pagos cargados, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas (más recientes primero) con ítems y pagos cargados.
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}
