package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/normalize"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// PriceLedgerUseCase mantiene un único precio activo por producto y su historial.
type PriceLedgerUseCase struct {
	txRunner    TxRunner
	priceRepo   repository.PriceRepository
	productRepo repository.ProductRepository
	clock       ports.Clock
	events      ports.EventPublisher
	log         zerolog.Logger
}

// NewPriceLedgerUseCase construye el caso de uso.
func NewPriceLedgerUseCase(
	txRunner TxRunner,
	priceRepo repository.PriceRepository,
	productRepo repository.ProductRepository,
	clock ports.Clock,
	events ports.EventPublisher,
	log zerolog.Logger,
) *PriceLedgerUseCase {
	return &PriceLedgerUseCase{
		txRunner:    txRunner,
		priceRepo:   priceRepo,
		productRepo: productRepo,
		clock:       clock,
		events:      events,
		log:         log,
	}
}

// GetActivePrice devuelve el importe del precio activo del producto.
// Si hay varios activos gana el de start_time más reciente.
func (uc *PriceLedgerUseCase) GetActivePrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrProductNotFound
	}
	return uc.ActivePriceInTx(ctx, uc.priceRepo, product)
}

// ActivePriceInTx resuelve el precio activo usando el repositorio del caller (misma transacción).
// Sin precio activo devuelve *domain.PriceError, que envuelve domain.ErrNoActivePrice.
func (uc *PriceLedgerUseCase) ActivePriceInTx(
	ctx context.Context,
	priceRepo repository.PriceRepository,
	product *entity.Product,
) (decimal.Decimal, error) {
	price, err := priceRepo.GetActive(ctx, product.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if price == nil {
		return decimal.Zero, &domain.PriceError{ProductID: product.ID, ProductName: product.Name}
	}
	return price.Amount, nil
}

// SetPrice cierra el precio activo, inserta el nuevo y actualiza la proyección en el producto,
// todo en una transacción. Un importe igual al vigente también genera una nueva fila.
func (uc *PriceLedgerUseCase) SetPrice(ctx context.Context, in dto.SetPriceRequest) (*dto.PriceResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	amount := normalize.Money(in.Amount)
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}

	now := uc.clock.Now()
	var price *entity.Price
	err := uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		price, err = uc.SetPriceInTx(ctx, priceRepo, productRepo, product.ID, amount, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", price.ProductID).Str("amount", price.Amount.StringFixed(2)).Msg("precio actualizado")
	ports.PublishAsync(uc.events, uc.log, ports.EventPriceChanged, map[string]any{
		"product_id": price.ProductID,
		"amount":     price.Amount,
		"start_time": price.StartTime,
	})
	return ToPriceResponse(price), nil
}

// SetPriceInTx aplica el cambio de precio con los repositorios del caller.
// El caller debe haber bloqueado la fila del producto.
func (uc *PriceLedgerUseCase) SetPriceInTx(
	ctx context.Context,
	priceRepo repository.PriceRepository,
	productRepo repository.ProductRepository,
	productID string,
	amount decimal.Decimal,
	now time.Time,
) (*entity.Price, error) {
	amount = normalize.Money(amount)
	if _, err := priceRepo.DeactivateActive(ctx, productID, now); err != nil {
		return nil, err
	}
	price := &entity.Price{
		ID:        uuid.New().String(),
		ProductID: productID,
		Amount:    amount,
		Active:    true,
		StartTime: now,
	}
	if err := priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateActivePrice(ctx, productID, amount); err != nil {
		return nil, err
	}
	return price, nil
}

// ListPrices devuelve el historial de precios más reciente primero.
func (uc *PriceLedgerUseCase) ListPrices(ctx context.Context, productID string, page dto.PageRequest) (*dto.PriceListResponse, error) {
	page.DefaultPage()
	list, err := uc.priceRepo.List(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPriceResponse(p))
	}
	return &dto.PriceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToPriceResponse convierte la entidad al DTO de salida.
func ToPriceResponse(p *entity.Price) *dto.PriceResponse {
	if p == nil {
		return nil
	}
	return &dto.PriceResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Amount:    p.Amount,
		Active:    p.Active,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
}
