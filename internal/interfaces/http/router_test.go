package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/application/pricing"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

var testNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type apiEnv struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	clock := ports.FixedClock{At: testNow}
	log := zerolog.Nop()
	events := ports.NopPublisher{}

	prices := pricing.NewPriceLedgerUseCase(txRunner, store.PriceRepository(), store.ProductRepository(), clock, events, log)
	stock := inventory.NewStockMovementUseCase(txRunner, store.ProductRepository(), store.StockMovementRepository(), clock, events, log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  inventory.NewProductUseCase(txRunner, store.ProductRepository(), prices, clock, log),
		StockUC:    stock,
		PriceUC:    prices,
		CreateSale: sales.NewCreateSaleUseCase(txRunner, stock, prices, clock, events, sales.DefaultConfig(), log),
		SaleQuery:  sales.NewQueryUseCase(store.SaleRepository(), store.ProductRepository(), pdf.NewMarotoReceiptGenerator(), "Loja"),
		JWTSecret:  testJWTSecret,
		JWTIssuer:  testIssuer,
	})
	return &apiEnv{app: app, store: store}
}

// call lanza la petición con el rol indicado y decodifica la respuesta en out (si no es nil).
func (e *apiEnv) call(t *testing.T, method, path, role string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *apiEnv) product(t *testing.T, name string, price string, qty, cost string) string {
	t.Helper()
	var p dto.ProductResponse
	status := e.call(t, http.MethodPost, "/api/products", apphttp.RoleAdmin,
		map[string]any{"name": name, "initial_price": price}, &p)
	require.Equal(t, http.StatusCreated, status)
	if qty != "" {
		status = e.call(t, http.MethodPost, "/api/inventory/movements", apphttp.RoleStock,
			map[string]any{"product_id": p.ID, "type": "entry", "quantity": qty, "unit_cost": cost}, nil)
		require.Equal(t, http.StatusCreated, status)
	}
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos, precios y movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_RegisterAndPrice(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Caderno", "12.345", "", "")

	var active dto.ActivePriceResponse
	status := e.call(t, http.MethodGet, "/api/products/"+id+"/price", apphttp.RoleSales, nil, &active)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, active.Amount.Equal(d("12.35")), "el precio se normaliza a 2 decimales")

	var price dto.PriceResponse
	status = e.call(t, http.MethodPost, "/api/prices", apphttp.RoleStock,
		map[string]any{"product_id": id, "amount": "15.00"}, &price)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, price.Active)

	var history dto.PriceListResponse
	status = e.call(t, http.MethodGet, "/api/products/"+id+"/prices", apphttp.RoleSales, nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Items, 2)
	assert.True(t, history.Items[0].Amount.Equal(d("15")))

	var got dto.ProductResponse
	status = e.call(t, http.MethodGet, "/api/products/"+id, apphttp.RoleSales, nil, &got)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, got.ActivePrice)
	assert.True(t, got.ActivePrice.Equal(d("15")))
}

func TestPrices_Errors(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Caneta", "2.00", "", "")

	var errBody dto.ErrorResponse
	status := e.call(t, http.MethodPost, "/api/prices", apphttp.RoleAdmin,
		map[string]any{"product_id": id, "amount": "-1"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)

	status = e.call(t, http.MethodPost, "/api/prices", apphttp.RoleAdmin,
		map[string]any{"product_id": "no-existe", "amount": "1"}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, errBody.Code)

	status = e.call(t, http.MethodPost, "/api/prices", apphttp.RoleSales,
		map[string]any{"product_id": id, "amount": "1"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProducts_NoActivePrice(t *testing.T) {
	e := newAPI(t)
	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, e.call(t, http.MethodPost, "/api/products", apphttp.RoleAdmin,
		map[string]any{"name": "Sem preço"}, &p))

	var errBody dto.ErrorResponse
	status := e.call(t, http.MethodGet, "/api/products/"+p.ID+"/price", apphttp.RoleAdmin, nil, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeNoActivePrice, errBody.Code)
}

func TestProducts_DuplicateCode(t *testing.T) {
	e := newAPI(t)
	body := map[string]any{"name": "A", "code": "789"}
	require.Equal(t, http.StatusCreated, e.call(t, http.MethodPost, "/api/products", apphttp.RoleAdmin, body, nil))

	var errBody dto.ErrorResponse
	status := e.call(t, http.MethodPost, "/api/products", apphttp.RoleAdmin, body, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, errBody.Code)
}

func TestInventory_Movements(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Mochila", "50.00", "10", "5.00")

	var mov dto.MovementResponse
	status := e.call(t, http.MethodPost, "/api/inventory/movements", apphttp.RoleStock,
		map[string]any{"product_id": id, "type": "entry", "quantity": "5", "unit_cost": "8.00"}, &mov)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, mov.AverageCost)
	assert.True(t, mov.AverageCost.Equal(d("6.00")))
	assert.True(t, mov.Stock.Equal(d("15")))
	assert.True(t, mov.TotalValue.Equal(d("40.00")))

	var errBody dto.ErrorResponse
	status = e.call(t, http.MethodPost, "/api/inventory/movements", apphttp.RoleStock,
		map[string]any{"product_id": id, "type": "exit", "quantity": "16"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeInsufficientStock, errBody.Code)
	assert.Contains(t, errBody.Message, "Mochila")

	status = e.call(t, http.MethodPost, "/api/inventory/movements", apphttp.RoleStock,
		map[string]any{"product_id": id, "type": "transfer", "quantity": "1"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "oneof", errBody.Fields["RegisterMovementRequest.Type"])

	var list dto.MovementListResponse
	status = e.call(t, http.MethodGet, "/api/inventory/movements?product_id="+id+"&limit=1", apphttp.RoleSales, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Limit)

	status = e.call(t, http.MethodGet, "/api/inventory/movements?limit=500", apphttp.RoleSales, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_CreateWithInstallmentsAndReceivable(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Mochila", "33.34", "10", "20.00")

	var sale dto.SaleResponse
	status := e.call(t, http.MethodPost, "/api/sales", apphttp.RoleSales, map[string]any{
		"items":    []map[string]any{{"product_id": id, "quantity": 3}},
		"payments": []map[string]any{{"method": "Cartão", "amount": "90.00", "installments": 3}},
	}, &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, sale.Total.Equal(d("100.02")))
	require.Len(t, sale.Payments, 4)
	for i := 0; i < 3; i++ {
		assert.True(t, sale.Payments[i].Amount.Equal(d("30.00")))
		require.NotNil(t, sale.Payments[i].InstallmentNumber)
		assert.Equal(t, i+1, *sale.Payments[i].InstallmentNumber)
	}
	pending := sale.Payments[3]
	assert.Equal(t, "pending", pending.Status)
	assert.Equal(t, "A Receber", pending.Method)
	assert.True(t, pending.Amount.Equal(d("10.02")))
	assert.Equal(t, "2024-04-14", pending.DueDate)

	var got dto.SaleResponse
	require.Equal(t, http.StatusOK, e.call(t, http.MethodGet, "/api/sales/"+sale.ID, apphttp.RoleFinance, nil, &got))
	assert.Equal(t, sale.ID, got.ID)
	assert.Len(t, got.Items, 1)

	var list dto.SaleListResponse
	require.Equal(t, http.StatusOK, e.call(t, http.MethodGet, "/api/sales", apphttp.RoleFinance, nil, &list))
	assert.Len(t, list.Items, 1)
}

func TestSales_Errors(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Régua", "1.00", "2", "0.50")

	tests := []struct {
		name   string
		role   string
		body   any
		status int
		code   string
	}{
		{"sin items", apphttp.RoleSales, map[string]any{"items": []any{}}, http.StatusBadRequest, apphttp.CodeValidation},
		{"json inválido", apphttp.RoleSales, `{"items": [`, http.StatusBadRequest, apphttp.CodeInvalidBody},
		{"stock insuficiente", apphttp.RoleSales, map[string]any{
			"items": []map[string]any{{"product_id": id, "quantity": 3}},
		}, http.StatusConflict, apphttp.CodeInsufficientStock},
		{"producto inexistente", apphttp.RoleSales, map[string]any{
			"items": []map[string]any{{"product_id": "nope", "quantity": 1}},
		}, http.StatusNotFound, apphttp.CodeNotFound},
		{"vencimiento mal formado", apphttp.RoleSales, map[string]any{
			"items":    []map[string]any{{"product_id": id, "quantity": 1}},
			"payments": []map[string]any{{"method": "Boleto", "amount": 1, "due_date": "15/03/2024"}},
		}, http.StatusBadRequest, apphttp.CodeValidation},
		{"rol sin permiso", apphttp.RoleStock, map[string]any{
			"items": []map[string]any{{"product_id": id, "quantity": 1}},
		}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBody dto.ErrorResponse
			status := e.call(t, http.MethodPost, "/api/sales", tt.role, tt.body, &errBody)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, errBody.Code)
		})
	}

	var p dto.ProductResponse
	require.Equal(t, http.StatusOK, e.call(t, http.MethodGet, "/api/products/"+id, apphttp.RoleAdmin, nil, &p))
	assert.True(t, p.Stock.Equal(d("2")), "ninguna venta fallida descuenta stock")
}

func TestSales_StorageFailureIsSaleCreation(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Lápis", "1.00", "5", "0.20")
	e.store.FailNext(memory.OpPaymentCreate, errors.New("disk full"))

	var errBody dto.ErrorResponse
	status := e.call(t, http.MethodPost, "/api/sales", apphttp.RoleAdmin, map[string]any{
		"items":    []map[string]any{{"product_id": id, "quantity": 1}},
		"payments": []map[string]any{{"method": "Pix", "amount": 1}},
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeSaleCreation, errBody.Code)
	assert.NotContains(t, errBody.Message, "disk full")
}

func TestSales_Receipt(t *testing.T) {
	e := newAPI(t)
	id := e.product(t, "Mochila", "10.00", "3", "4.00")

	var sale dto.SaleResponse
	require.Equal(t, http.StatusCreated, e.call(t, http.MethodPost, "/api/sales", apphttp.RoleSales, map[string]any{
		"items": []map[string]any{{"product_id": id, "quantity": 1}},
	}, &sale))

	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+sale.ID+"/receipt", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleFinance))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "venta-"+sale.ID[:8]+".pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	var errBody dto.ErrorResponse
	status := e.call(t, http.MethodGet, "/api/sales/no-existe/receipt", apphttp.RoleFinance, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_RequiresToken(t *testing.T) {
	e := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
