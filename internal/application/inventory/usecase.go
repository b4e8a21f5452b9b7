package inventory

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
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/normalize"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// StockMovementUseCase registra entradas, salidas y ajustes de stock de forma transaccional,
// con bloqueo de la fila del producto (SELECT FOR UPDATE) y un movimiento inmutable por cambio.
type StockMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	clock       ports.Clock
	events      ports.EventPublisher
	log         zerolog.Logger
}

// NewStockMovementUseCase construye el caso de uso.
func NewStockMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	clock ports.Clock,
	events ports.EventPublisher,
	log zerolog.Logger,
) *StockMovementUseCase {
	return &StockMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		clock:       clock,
		events:      events,
		log:         log,
	}
}

// MovementInput entrada ya normalizada de un movimiento.
type MovementInput struct {
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Note      string
	SaleID    string
}

// NewMovementInput normaliza cantidad (3 decimales) y costo (2 decimales) y valida el movimiento.
func NewMovementInput(userID string, in dto.RegisterMovementRequest) (MovementInput, error) {
	input := MovementInput{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  normalize.Quantity(in.Quantity),
		UnitCost:  normalize.MoneyPtr(in.UnitCost),
		Note:      in.Note,
	}
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) {
		return input, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeEntry, entity.MovementTypeExit:
		if !input.Quantity.IsPositive() {
			return input, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity.IsNegative() {
			return input, domain.ErrInvalidQuantity
		}
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return input, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	if input.Type == entity.MovementTypeEntry && input.UnitCost == nil {
		return input, fmt.Errorf("%w: la entrada requiere costo unitario", domain.ErrInvalidInput)
	}
	return input, nil
}

// ApplyMovement inicia una transacción, bloquea el producto, aplica el movimiento según su tipo
// y hace Commit o Rollback.
func (uc *StockMovementUseCase) ApplyMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input, err := NewMovementInput(userID, in)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var (
		mov     *entity.StockMovement
		product *entity.Product
	)
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		mov, err = uc.ApplyInTx(ctx, movRepo, productRepo, product, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(product, mov)
	resp := ToMovementResponse(mov)
	resp.Stock = &product.Stock
	resp.AverageCost = product.AverageCost
	return resp, nil
}

// ApplyInTx aplica el movimiento sobre product (ya bloqueado por el caller) usando sus repositorios.
// product queda con el estado resultante.
func (uc *StockMovementUseCase) ApplyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	switch input.Type {
	case entity.MovementTypeEntry:
		return uc.doEntry(ctx, movRepo, productRepo, product, input, now)
	case entity.MovementTypeExit:
		return uc.doExit(ctx, movRepo, productRepo, product, input, now)
	case entity.MovementTypeAdjustment:
		return uc.doAdjustment(ctx, movRepo, productRepo, product, input, now)
	}
	return nil, domain.ErrInvalidInput
}

// RegisterSaleExitInTx descuenta quantity por una venta en la transacción del caller y deja
// un movimiento de salida que referencia la venta. Sin stock suficiente devuelve *domain.StockError.
func (uc *StockMovementUseCase) RegisterSaleExitInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity decimal.Decimal,
	saleID, userID string,
	now time.Time,
) (*entity.StockMovement, error) {
	return uc.doExit(ctx, movRepo, productRepo, product, MovementInput{
		UserID:    userID,
		ProductID: product.ID,
		Type:      entity.MovementTypeExit,
		Quantity:  normalize.Quantity(quantity),
		Note:      "Venta " + saleID,
		SaleID:    saleID,
	}, now)
}

// doEntry: CostCalculator sobre el stock previo, suma stock, actualiza costo y promedio.
func (uc *StockMovementUseCase) doEntry(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	unitCost := *input.UnitCost
	avg := inventory.CostCalculator(product.Stock, product.CostBasis(), input.Quantity, unitCost)

	product.Stock = normalize.Quantity(product.Stock.Add(input.Quantity))
	product.Cost = &unitCost
	product.AverageCost = &avg
	product.UpdatedAt = now
	if err := productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}
	total := inventory.MovementValue(unitCost, input.Quantity)
	return uc.record(ctx, movRepo, input, &unitCost, &total, now)
}

// doExit: verifica stock >= cantidad, resta y registra la salida al costo promedio vigente.
func (uc *StockMovementUseCase) doExit(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	if input.Quantity.GreaterThan(product.Stock) {
		return nil, &domain.StockError{ProductID: product.ID, ProductName: product.Name}
	}
	product.Stock = normalize.Quantity(product.Stock.Sub(input.Quantity))
	product.UpdatedAt = now
	if err := productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}

	unitCost := input.UnitCost
	if unitCost == nil && (product.AverageCost != nil || product.Cost != nil) {
		basis := product.CostBasis()
		unitCost = &basis
	}
	var total *decimal.Decimal
	if unitCost != nil {
		v := inventory.MovementValue(*unitCost, input.Quantity)
		total = &v
	}
	return uc.record(ctx, movRepo, input, unitCost, total, now)
}

// doAdjustment: fija el stock al valor absoluto; con costo informado reemplaza costo y promedio.
func (uc *StockMovementUseCase) doAdjustment(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	product.Stock = input.Quantity
	var total *decimal.Decimal
	if input.UnitCost != nil {
		cost := *input.UnitCost
		product.Cost = &cost
		avg := cost
		product.AverageCost = &avg
		v := inventory.MovementValue(cost, input.Quantity)
		total = &v
	}
	product.UpdatedAt = now
	if err := productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}
	return uc.record(ctx, movRepo, input, input.UnitCost, total, now)
}

func (uc *StockMovementUseCase) record(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	input MovementInput,
	unitCost, total *decimal.Decimal,
	now time.Time,
) (*entity.StockMovement, error) {
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		Type:       input.Type,
		Quantity:   input.Quantity,
		UnitCost:   unitCost,
		TotalValue: total,
		SaleID:     input.SaleID,
		Note:       input.Note,
		CreatedBy:  input.UserID,
		Date:       now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}

// NotifyCommitted publica los eventos de un movimiento ya confirmado (también lo usan las ventas).
func (uc *StockMovementUseCase) NotifyCommitted(product *entity.Product, mov *entity.StockMovement) {
	ports.PublishAsync(uc.events, uc.log, ports.EventStockMoved, map[string]any{
		"movement_id": mov.ID,
		"product_id":  mov.ProductID,
		"type":        mov.Type,
		"quantity":    mov.Quantity,
		"stock":       product.Stock,
		"sale_id":     mov.SaleID,
	})
	if product.Stock.LessThan(decimal.NewFromInt(int64(product.MinimumStock))) {
		ports.PublishAsync(uc.events, uc.log, ports.EventStockBelowMinimum, map[string]any{
			"product_id":    product.ID,
			"name":          product.Name,
			"stock":         product.Stock,
			"minimum_stock": product.MinimumStock,
		})
	}
}

func (uc *StockMovementUseCase) afterCommit(product *entity.Product, mov *entity.StockMovement) {
	uc.log.Info().
		Str("product_id", product.ID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Str("stock", product.Stock.String()).
		Msg("movimiento de stock registrado")
	uc.NotifyCommitted(product, mov)
}

// ListMovements devuelve los movimientos más recientes primero; productID vacío lista todos.
func (uc *StockMovementUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movRepo.List(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitCost:   m.UnitCost,
		TotalValue: m.TotalValue,
		SaleID:     m.SaleID,
		Note:       m.Note,
		Date:       m.Date,
	}
}
