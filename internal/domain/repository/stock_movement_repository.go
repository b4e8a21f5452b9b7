package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos más recientes primero; productID vacío lista todos.
	List(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
