package sales

import (
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ToSaleResponse convierte la venta (con ítems y pagos) al DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:        s.ID,
		ClientID:  s.ClientID,
		UserID:    s.UserID,
		Subtotal:  s.Subtotal,
		Discount:  s.Discount,
		Surcharge: s.Surcharge,
		Total:     s.Total,
		Status:    s.Status,
		Note:      s.Note,
		Date:      s.Date,
		Items:     make([]dto.SaleItemResponse, 0, len(s.Items)),
		Payments:  make([]dto.SalePaymentResponse, 0, len(s.Payments)),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	for _, p := range s.Payments {
		pr := dto.SalePaymentResponse{
			ID:                p.ID,
			Method:            p.Method,
			Amount:            p.Amount,
			Status:            p.Status,
			PaidAt:            p.PaidAt,
			InstallmentNumber: p.InstallmentNumber,
			InstallmentTotal:  p.InstallmentTotal,
			Note:              p.Note,
		}
		if p.DueDate != nil {
			pr.DueDate = p.DueDate.Format(dto.DateLayout)
		}
		out.Payments = append(out.Payments, pr)
	}
	return out
}
