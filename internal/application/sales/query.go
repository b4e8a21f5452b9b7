package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// QueryUseCase consulta ventas y genera su comprobante.
type QueryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	receipts    ports.ReceiptGenerator
	storeName   string
}

// NewQueryUseCase construye el caso de uso. receipts puede ser nil si no se generan PDFs.
func NewQueryUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	receipts ports.ReceiptGenerator,
	storeName string,
) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, productRepo: productRepo, receipts: receipts, storeName: storeName}
}

// GetSale devuelve la venta con ítems y pagos.
func (uc *QueryUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// ListSales lista ventas, las más recientes primero.
func (uc *QueryUseCase) ListSales(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Receipt genera el PDF de la venta.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *QueryUseCase) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("comprobante: generador no configurado")
	}
	sale, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(sale.Items))
	for _, it := range sale.Items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener producto: %w", err)
		}
		if p != nil {
			names[it.ProductID] = p.Name
		}
	}
	pdf, err := uc.receipts.GenerateSaleReceipt(ctx, ports.ReceiptData{
		StoreName:    uc.storeName,
		Sale:         sale,
		ProductNames: names,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("venta-%s.pdf", shortID(sale.ID)), nil
}

func (uc *QueryUseCase) load(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
