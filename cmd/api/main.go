package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/application/pricing"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	infraevents "github.com/jhoicas/backoffice-api/internal/infrastructure/events"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// txRunner reúne los TxRunner que piden los casos de uso; lo implementan postgres y memory.
type txRunner interface {
	inventory.TxRunner
	pricing.TxRunner
	sales.SaleTxRunner
}

// storage agrupa repositorios y TxRunner del driver elegido.
type storage struct {
	tx        txRunner
	products  repository.ProductRepository
	prices    repository.PriceRepository
	movements repository.StockMovementRepository
	sales     repository.SaleRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var events ports.EventPublisher = ports.NopPublisher{}
	if cfg.Redis.URL != "" {
		rdb, err := infraevents.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		events = infraevents.NewRedisPublisher(rdb, cfg.Redis.Queue, ports.SystemClock{})
		log.Info().Str("queue", cfg.Redis.Queue).Msg("eventos publicados en Redis")
	}

	clock := ports.SystemClock{}
	priceUC := pricing.NewPriceLedgerUseCase(store.tx, store.prices, store.products, clock, events, log.Component("pricing"))
	stockUC := inventory.NewStockMovementUseCase(store.tx, store.products, store.movements, clock, events, log.Component("inventory"))
	productUC := inventory.NewProductUseCase(store.tx, store.products, priceUC, clock, log.Component("catalog"))
	createSaleUC := sales.NewCreateSaleUseCase(store.tx, stockUC, priceUC, clock, events, sales.Config{
		ReceivableMethod:        cfg.Sales.ReceivableMethod,
		ReceivableDueDays:       cfg.Sales.ReceivableDueDays,
		InstallmentIntervalDays: cfg.Sales.InstallmentIntervalDays,
	}, log.Component("sales"))
	saleQueryUC := sales.NewQueryUseCase(store.sales, store.products, infrapdf.NewMarotoReceiptGenerator(), cfg.Sales.StoreName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		StockUC:    stockUC,
		PriceUC:    priceUC,
		CreateSale: createSaleUC,
		SaleQuery:  saleQueryUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (aplicando migraciones si MIGRATIONS_AUTO) o el almacén en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &storage{
			tx:        memory.NewTxRunner(mem),
			products:  mem.ProductRepository(),
			prices:    mem.PriceRepository(),
			movements: mem.StockMovementRepository(),
			sales:     mem.SaleRepository(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.MigrationsAuto {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		prices:    postgres.NewPriceRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		close:     pool.Close,
	}, nil
}
