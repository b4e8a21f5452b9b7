package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductRequest entrada para registrar un producto con precio inicial opcional.
type RegisterProductRequest struct {
	Code         string           `json:"code" validate:"omitempty,max=50"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	MinimumStock int              `json:"minimum_stock" validate:"min=0"`
	UnitID       string           `json:"unit_id" validate:"omitempty,max=36"`
	InitialPrice *decimal.Decimal `json:"initial_price,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code,omitempty"`
	Name         string           `json:"name"`
	Stock        decimal.Decimal  `json:"stock"`
	MinimumStock int              `json:"minimum_stock"`
	Cost         *decimal.Decimal `json:"cost"`
	AverageCost  *decimal.Decimal `json:"average_cost"`
	ActivePrice  *decimal.Decimal `json:"active_price"`
	UnitID       string           `json:"unit_id,omitempty"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
