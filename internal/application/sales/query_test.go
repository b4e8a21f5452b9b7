package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

type fakeReceipts struct {
	got ports.ReceiptData
}

func (f *fakeReceipts) GenerateSaleReceipt(_ context.Context, data ports.ReceiptData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-fake"), nil
}

func TestGetSale_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.query.GetSale(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale_EagerLoadsItemsAndPayments(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Caderno", "10", "10.00")
	created, err := f.create.CreateSale(context.Background(), "", dto.CreateSaleRequest{
		Items:    []dto.SaleItemRequest{{ProductID: a.ID, Quantity: d("2")}},
		Payments: []dto.SalePaymentRequest{{Method: "Pix", Amount: d("5.00")}},
	})
	require.NoError(t, err)

	got, err := f.query.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 1)
	assert.Len(t, got.Payments, 2)
}

func TestListSales_NewestFirst(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Caderno", "10", "10.00")
	txRunner := memory.NewTxRunner(f.store)

	var ids []string
	for i := 0; i < 3; i++ {
		clock := ports.FixedClock{At: testNow.Add(time.Duration(i) * time.Hour)}
		stock := inventory.NewStockMovementUseCase(txRunner, f.store.ProductRepository(), f.store.StockMovementRepository(), clock, ports.NopPublisher{}, zerolog.Nop())
		uc := sales.NewCreateSaleUseCase(txRunner, stock, f.prices, clock, ports.NopPublisher{}, sales.DefaultConfig(), zerolog.Nop())
		s, err := uc.CreateSale(context.Background(), "", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: a.ID, Quantity: d("1")}},
		})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	page, err := f.query.ListSales(context.Background(), dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, ids[1], page.Items[1].ID)
	assert.NotEmpty(t, page.Items[0].Items, "cada venta trae sus ítems")
}

func TestReceipt_PassesProductNamesToGenerator(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Caderno", "10", "10.00")
	created, err := f.create.CreateSale(context.Background(), "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: a.ID, Quantity: d("1")}},
	})
	require.NoError(t, err)

	gen := &fakeReceipts{}
	uc := sales.NewQueryUseCase(f.store.SaleRepository(), f.store.ProductRepository(), gen, "Loja Centro")
	pdf, filename, err := uc.Receipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "venta-"+created.ID[:8]+".pdf", filename)
	assert.Equal(t, "Loja Centro", gen.got.StoreName)
	assert.Equal(t, "Caderno", gen.got.ProductNames[a.ID])
}

func TestReceipt_UnknownSale(t *testing.T) {
	f := newFixture(t)
	uc := sales.NewQueryUseCase(f.store.SaleRepository(), f.store.ProductRepository(), &fakeReceipts{}, "")
	_, _, err := uc.Receipt(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
