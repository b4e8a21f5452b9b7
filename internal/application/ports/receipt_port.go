package ports

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ReceiptData agrupa la venta y los nombres de sus productos para el comprobante.
type ReceiptData struct {
	StoreName    string
	Sale         *entity.Sale
	ProductNames map[string]string
}

// ReceiptGenerator genera la representación en PDF de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
