package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/pricing"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *inventory.ProductUseCase
	StockUC    *inventory.StockMovementUseCase
	PriceUC    *pricing.PriceLedgerUseCase
	CreateSale *sales.CreateSaleUseCase
	SaleQuery  *sales.QueryUseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las escrituras
// además exigen rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	catalogWriters := RequireRole(RoleAdmin, RoleStock)
	sellers := RequireRole(RoleAdmin, RoleSales)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceUC)
	priceHandler := NewPriceHandler(deps.PriceUC)
	products := api.Group("/products")
	products.Post("/", catalogWriters, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/price", productHandler.ActivePrice)
	products.Get("/:id/prices", priceHandler.List)

	// Prices
	prices := api.Group("/prices")
	prices.Post("/", catalogWriters, priceHandler.Set)
	prices.Get("/", priceHandler.List)

	// Inventory movements
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/movements", catalogWriters, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Sales
	saleGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	saleGroup.Post("/", sellers, saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/:id", saleHandler.GetByID)
	saleGroup.Get("/:id/receipt", saleHandler.Receipt)
}
