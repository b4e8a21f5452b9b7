package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price es una fila del historial de precios de venta. Como máximo una por producto está activa.
type Price struct {
	ID        string
	ProductID string
	Amount    decimal.Decimal
	Active    bool
	StartTime time.Time
	EndTime   *time.Time
}
