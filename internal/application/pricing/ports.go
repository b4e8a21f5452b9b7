package pricing

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios del historial de precios.
type TxRunner interface {
	RunPricing(ctx context.Context, fn func(
		priceRepo repository.PriceRepository,
		productRepo repository.ProductRepository,
	) error) error
}
