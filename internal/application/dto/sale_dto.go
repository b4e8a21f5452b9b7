package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID  string               `json:"client_id,omitempty" validate:"omitempty,max=36"`
	Items     []SaleItemRequest    `json:"items" validate:"required,min=1,dive"`
	Discount  decimal.Decimal      `json:"discount"`
	Surcharge decimal.Decimal      `json:"surcharge"`
	Note      string               `json:"note,omitempty" validate:"max=500"`
	Payments  []SalePaymentRequest `json:"payments" validate:"dive"`
}

// SaleItemRequest línea de venta; UnitPrice opcional reemplaza al precio activo.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SalePaymentRequest pago declarado; Installments 0 equivale a 1.
type SalePaymentRequest struct {
	Method       string          `json:"method" validate:"required,max=50"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Installments int             `json:"installments,omitempty" validate:"omitempty,min=1,max=120"`
	Note         string          `json:"note,omitempty" validate:"max=500"`
}

// SaleResponse venta con ítems y pagos.
type SaleResponse struct {
	ID        string                `json:"id"`
	ClientID  string                `json:"client_id,omitempty"`
	UserID    string                `json:"user_id,omitempty"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	Discount  decimal.Decimal       `json:"discount"`
	Surcharge decimal.Decimal       `json:"surcharge"`
	Total     decimal.Decimal       `json:"total"`
	Status    string                `json:"status"`
	Note      string                `json:"note,omitempty"`
	Date      time.Time             `json:"date"`
	Items     []SaleItemResponse    `json:"items"`
	Payments  []SalePaymentResponse `json:"payments"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalePaymentResponse pago o cuota de la venta.
type SalePaymentResponse struct {
	ID                string          `json:"id"`
	Method            string          `json:"method"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	DueDate           string          `json:"due_date,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	InstallmentNumber *int            `json:"installment_number,omitempty"`
	InstallmentTotal  *int            `json:"installment_total,omitempty"`
	Note              string          `json:"note,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
