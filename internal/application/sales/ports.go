package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye productos, precios,
// movimientos y ventas.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// InventoryUseCase integra ventas con el motor de stock.
// RegisterSaleExitInTx usa los repositorios del caller (misma transacción); si retorna error
// (ej: ErrInsufficientStock) el caller debe hacer rollback.
type InventoryUseCase interface {
	RegisterSaleExitInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity decimal.Decimal,
		saleID, userID string,
		now time.Time,
	) (*entity.StockMovement, error)
	NotifyCommitted(product *entity.Product, mov *entity.StockMovement)
}

// PriceLedger resuelve el precio activo dentro de la transacción de la venta.
type PriceLedger interface {
	ActivePriceInTx(ctx context.Context, priceRepo repository.PriceRepository, product *entity.Product) (decimal.Decimal, error)
}
