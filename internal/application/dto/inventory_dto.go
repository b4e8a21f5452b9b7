package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity es la cantidad movida (entry/exit) o el stock final (adjustment).
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=entry exit adjustment"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Note      string           `json:"note,omitempty" validate:"max=500"`
}

// MovementResponse movimiento registrado junto con el estado resultante del producto.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	TotalValue  *decimal.Decimal `json:"total_value"`
	SaleID      string           `json:"sale_id,omitempty"`
	Note        string           `json:"note,omitempty"`
	Date        time.Time        `json:"date"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
	AverageCost *decimal.Decimal `json:"average_cost,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
