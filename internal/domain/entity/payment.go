package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusCanceled = "canceled"
)

// Payment es un pago (o cuota) de una venta. InstallmentNumber/InstallmentTotal son nil
// cuando el pago no forma parte de un plan en cuotas.
type Payment struct {
	ID                string
	SaleID            string
	Method            string
	Amount            decimal.Decimal
	Status            string
	DueDate           *time.Time
	PaidAt            *time.Time
	InstallmentNumber *int
	InstallmentTotal  *int
	Note              string
}
