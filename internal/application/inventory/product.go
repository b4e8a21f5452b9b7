package inventory

import (
	"context"
	"fmt"
	"strings"

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

// ProductUseCase alta y consulta de productos. Stock y costos se manejan vía movimientos;
// el precio vía el historial de precios.
type ProductUseCase struct {
	txRunner CatalogTxRunner
	repo     repository.ProductRepository
	prices   PriceSetter
	clock    ports.Clock
	log      zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner CatalogTxRunner,
	repo repository.ProductRepository,
	prices PriceSetter,
	clock ports.Clock,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, prices: prices, clock: clock, log: log}
}

// Register crea el producto con stock cero y, si se informa, su primer precio activo
// en la misma transacción.
func (uc *ProductUseCase) Register(ctx context.Context, in dto.RegisterProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	initial := normalize.MoneyPtr(in.InitialPrice)
	if initial != nil && initial.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}

	now := uc.clock.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         strings.TrimSpace(in.Code),
		Name:         name,
		Stock:        decimal.Zero,
		MinimumStock: in.MinimumStock,
		UnitID:       in.UnitID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunPricing(ctx, func(priceRepo repository.PriceRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if initial == nil {
			return nil
		}
		if _, err := uc.prices.SetPriceInTx(ctx, priceRepo, productRepo, product.ID, *initial, now); err != nil {
			return err
		}
		product.ActivePrice = initial
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("producto registrado")
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return ToProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Stock:        p.Stock,
		MinimumStock: p.MinimumStock,
		Cost:         p.Cost,
		AverageCost:  p.AverageCost,
		ActivePrice:  p.ActivePrice,
		UnitID:       p.UnitID,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
