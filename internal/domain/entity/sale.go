package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCanceled  = "canceled"
)

// Sale representa la cabecera de una venta con sus ítems y pagos.
type Sale struct {
	ID        string
	ClientID  string // vacío cuando la venta no tiene cliente
	UserID    string
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Surcharge decimal.Decimal
	Total     decimal.Decimal
	Status    string
	Note      string
	Date      time.Time
	Items     []*SaleItem
	Payments  []*Payment
}

// SaleItem es una línea de venta con el precio unitario congelado al momento de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// PaidTotal suma los pagos con estado pagado.
func (s *Sale) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		if p.Status == PaymentStatusPaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}
