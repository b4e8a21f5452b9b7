package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/installment"
	"github.com/jhoicas/backoffice-api/internal/domain/normalize"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CreateSaleUseCase crea una venta, descuenta el stock, genera los pagos y el saldo pendiente
// en una sola transacción.
type CreateSaleUseCase struct {
	txRunner    SaleTxRunner
	inventoryUC InventoryUseCase
	prices      PriceLedger
	clock       ports.Clock
	events      ports.EventPublisher
	cfg         Config
	log         zerolog.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	inventoryUC InventoryUseCase,
	prices PriceLedger,
	clock ports.Clock,
	events ports.EventPublisher,
	cfg Config,
	log zerolog.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		prices:      prices,
		clock:       clock,
		events:      events,
		cfg:         cfg.withDefaults(),
		log:         log,
	}
}

type itemInput struct {
	productID string
	quantity  decimal.Decimal
	override  *decimal.Decimal
}

type paymentInput struct {
	method       string
	amount       decimal.Decimal
	dueDate      *time.Time
	installments int
	note         string
}

// line es un ítem ya resuelto dentro de la transacción.
type line struct {
	product   *entity.Product
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
	subtotal  decimal.Decimal
}

// CreateSale ejecuta la venta completa. Cualquier error revierte todo: ningún stock cambia y
// no quedan filas de venta, ítems ni pagos.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	items, payments, err := parseRequest(in)
	if err != nil {
		return nil, err
	}
	discount := normalize.Money(in.Discount)
	surcharge := normalize.Money(in.Surcharge)

	now := uc.clock.Now()
	saleID := uuid.New().String()
	var (
		sale      *entity.Sale
		committed []committedExit
	)

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		committed = committed[:0]

		// 1) Bloquear productos, validar stock y resolver precio (fail-fast, sin escribir)
		lines := make([]line, 0, len(items))
		subtotal := decimal.Zero
		for _, it := range items {
			product, err := productRepo.GetForUpdate(ctx, it.productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, it.productID)
			}
			if it.quantity.GreaterThan(product.Stock) {
				return &domain.StockError{ProductID: product.ID, ProductName: product.Name}
			}
			unitPrice, err := uc.resolvePrice(ctx, priceRepo, product, it.override)
			if err != nil {
				return err
			}
			l := line{
				product:   product,
				quantity:  it.quantity,
				unitPrice: unitPrice,
				subtotal:  normalize.Money(unitPrice.Mul(it.quantity)),
			}
			subtotal = subtotal.Add(l.subtotal)
			lines = append(lines, l)
		}

		// 2) Cabecera con totales
		sale = &entity.Sale{
			ID:        saleID,
			ClientID:  in.ClientID,
			UserID:    userID,
			Subtotal:  normalize.Money(subtotal),
			Discount:  discount,
			Surcharge: surcharge,
			Total:     normalize.Money(subtotal.Sub(discount).Add(surcharge)),
			Status:    entity.SaleStatusCompleted,
			Note:      in.Note,
			Date:      now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		// 3) Ítems y salidas de stock (el producto se vuelve a leer: puede repetirse en la venta)
		for _, l := range lines {
			product, err := productRepo.GetForUpdate(ctx, l.product.ID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, l.product.ID)
			}
			mov, err := uc.inventoryUC.RegisterSaleExitInTx(ctx, movRepo, productRepo, product, l.quantity, saleID, userID, now)
			if err != nil {
				return err
			}
			committed = append(committed, committedExit{product: product, movement: mov})
			if err := saleRepo.CreateItem(ctx, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: product.ID,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice,
				Subtotal:  l.subtotal,
			}); err != nil {
				return err
			}
		}

		// 4) Pagos declarados, divididos en cuotas
		totalPaid := decimal.Zero
		for _, p := range payments {
			paid, err := uc.createPayments(ctx, saleRepo, saleID, p, now)
			if err != nil {
				return err
			}
			totalPaid = totalPaid.Add(paid)
		}

		// 5) Saldo pendiente
		balance := normalize.Money(sale.Total.Sub(totalPaid))
		if balance.IsPositive() {
			due := dateOnly(now).AddDate(0, 0, uc.cfg.ReceivableDueDays)
			if err := saleRepo.CreatePayment(ctx, &entity.Payment{
				ID:      uuid.New().String(),
				SaleID:  saleID,
				Method:  uc.cfg.ReceivableMethod,
				Amount:  balance,
				Status:  entity.PaymentStatusPending,
				DueDate: &due,
				Note:    uc.cfg.ReceivableNote,
			}); err != nil {
				return err
			}
		}

		// 6) Releer con ítems y pagos
		loaded, err := saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if loaded == nil {
			return domain.ErrSaleNotFound
		}
		sale = loaded
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("sale_id", saleID).Msg("venta revertida")
		return nil, &domain.SaleCreationError{Cause: err}
	}

	uc.afterCommit(sale, committed)
	return ToSaleResponse(sale), nil
}

type committedExit struct {
	product  *entity.Product
	movement *entity.StockMovement
}

func (uc *CreateSaleUseCase) resolvePrice(
	ctx context.Context,
	priceRepo repository.PriceRepository,
	product *entity.Product,
	override *decimal.Decimal,
) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	amount, err := uc.prices.ActivePriceInTx(ctx, priceRepo, product)
	if err != nil {
		return decimal.Zero, err
	}
	return normalize.Money(amount), nil
}

// createPayments persiste las cuotas de un pago declarado y devuelve la suma persistida.
func (uc *CreateSaleUseCase) createPayments(
	ctx context.Context,
	saleRepo repository.SaleRepository,
	saleID string,
	p paymentInput,
	now time.Time,
) (decimal.Decimal, error) {
	parts, err := installment.Split(p.amount, p.installments)
	if err != nil {
		return decimal.Zero, err
	}
	dues := installment.DueDates(p.dueDate, len(parts), uc.cfg.InstallmentIntervalDays)
	paid := decimal.Zero
	for i, amount := range parts {
		paidAt := now
		payment := &entity.Payment{
			ID:      uuid.New().String(),
			SaleID:  saleID,
			Method:  p.method,
			Amount:  amount,
			Status:  entity.PaymentStatusPaid,
			DueDate: dues[i],
			PaidAt:  &paidAt,
			Note:    p.note,
		}
		if len(parts) > 1 {
			number, total := i+1, len(parts)
			payment.InstallmentNumber = &number
			payment.InstallmentTotal = &total
		}
		if err := saleRepo.CreatePayment(ctx, payment); err != nil {
			return decimal.Zero, err
		}
		paid = paid.Add(amount)
	}
	return paid, nil
}

func (uc *CreateSaleUseCase) afterCommit(sale *entity.Sale, exits []committedExit) {
	pending := decimal.Zero
	for _, p := range sale.Payments {
		if p.Status == entity.PaymentStatusPending {
			pending = pending.Add(p.Amount)
		}
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("total", sale.Total.StringFixed(2)).
		Str("pending", pending.StringFixed(2)).
		Int("items", len(sale.Items)).
		Msg("venta creada")

	ports.PublishAsync(uc.events, uc.log, ports.EventSaleCreated, map[string]any{
		"sale_id":   sale.ID,
		"client_id": sale.ClientID,
		"total":     sale.Total,
		"pending":   pending,
		"date":      sale.Date,
	})
	for _, e := range exits {
		uc.inventoryUC.NotifyCommitted(e.product, e.movement)
	}
}

// parseRequest normaliza y valida la entrada antes de abrir la transacción.
func parseRequest(in dto.CreateSaleRequest) ([]itemInput, []paymentInput, error) {
	if len(in.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: la venta no tiene ítems", domain.ErrInvalidInput)
	}
	items := make([]itemInput, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" {
			return nil, nil, domain.ErrInvalidInput
		}
		qty := normalize.Quantity(it.Quantity)
		if !qty.IsPositive() {
			return nil, nil, domain.ErrInvalidQuantity
		}
		override := normalize.MoneyPtr(it.UnitPrice)
		if override != nil && override.IsNegative() {
			return nil, nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		items = append(items, itemInput{productID: it.ProductID, quantity: qty, override: override})
	}

	payments := make([]paymentInput, 0, len(in.Payments))
	for _, p := range in.Payments {
		if strings.TrimSpace(p.Method) == "" {
			return nil, nil, fmt.Errorf("%w: forma de pago requerida", domain.ErrInvalidInput)
		}
		n := p.Installments
		if n == 0 {
			n = 1
		}
		if n < 1 {
			return nil, nil, fmt.Errorf("%w: número de cuotas inválido", domain.ErrInvalidInput)
		}
		var due *time.Time
		if p.DueDate != "" {
			t, err := time.Parse(dto.DateLayout, p.DueDate)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: fecha de vencimiento inválida", domain.ErrInvalidInput)
			}
			due = &t
		}
		payments = append(payments, paymentInput{
			method:       p.Method,
			amount:       normalize.Money(p.Amount),
			dueDate:      due,
			installments: n,
			note:         p.Note,
		})
	}
	return items, payments, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrNoActivePrice,
		domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
