package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// CatalogTxRunner agrupa productos y precios en una transacción (alta de producto con precio inicial).
type CatalogTxRunner interface {
	RunPricing(ctx context.Context, fn func(
		priceRepo repository.PriceRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// PriceSetter registra un precio con los repositorios del caller (misma transacción).
type PriceSetter interface {
	SetPriceInTx(
		ctx context.Context,
		priceRepo repository.PriceRepository,
		productRepo repository.ProductRepository,
		productID string,
		amount decimal.Decimal,
		now time.Time,
	) (*entity.Price, error)
}
