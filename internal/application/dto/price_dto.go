package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetPriceRequest body para POST /api/prices.
type SetPriceRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

// PriceResponse fila del historial de precios.
type PriceResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
	Active    bool            `json:"active"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time"`
}

// ActivePriceResponse respuesta de GET /api/products/:id/price.
type ActivePriceResponse struct {
	ProductID string          `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// PriceListResponse historial paginado.
type PriceListResponse struct {
	Items []PriceResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
