package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PriceRepository define el puerto de persistencia del historial de precios.
type PriceRepository interface {
	Create(ctx context.Context, price *entity.Price) error
	// GetActive devuelve el precio activo más reciente (start_time desc) o (nil, nil).
	GetActive(ctx context.Context, productID string) (*entity.Price, error)
	// DeactivateActive cierra todos los precios activos del producto con end_time = at.
	DeactivateActive(ctx context.Context, productID string, at time.Time) (int64, error)
	// List devuelve el historial más reciente primero; productID vacío lista todos.
	List(ctx context.Context, productID string, limit, offset int) ([]*entity.Price, error)
}
