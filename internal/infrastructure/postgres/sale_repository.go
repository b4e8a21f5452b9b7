package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, COALESCE(client_id, ''), COALESCE(user_id, ''), subtotal, discount, surcharge, total,
	status, COALESCE(note, ''), date`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, client_id, user_id, subtotal, discount, surcharge, total, status, note, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, nullIfEmpty(sale.ClientID), nullIfEmpty(sale.UserID), sale.Subtotal, sale.Discount,
		sale.Surcharge, sale.Total, sale.Status, nullIfEmpty(sale.Note), sale.Date,
	)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return mapWriteError("insert sale item", err)
	}
	return nil
}

// CreatePayment persiste un pago o una cuota.
func (r *SaleRepo) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, sale_id, method, amount, status, due_date, paid_at, installment_number, installment_total, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.SaleID, payment.Method, payment.Amount, payment.Status, payment.DueDate,
		payment.PaidAt, payment.InstallmentNumber, payment.InstallmentTotal, nullIfEmpty(payment.Note),
	)
	if err != nil {
		return mapWriteError("insert payment", err)
	}
	return nil
}

// GetByID obtiene la venta con ítems y pagos.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadDetails(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List devuelve ventas (más recientes primero) con ítems y pagos.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	lim, off := pageArgs(limit, offset)
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC, seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadDetails carga ítems y pagos de todas las ventas con una consulta por tabla.
func (r *SaleRepo) loadDetails(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id::text = ANY($1::text[]) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	for itemRows.Next() {
		var it entity.SaleItem
		if err := itemRows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			itemRows.Close()
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s := byID[it.SaleID]; s != nil {
			s.Items = append(s.Items, &it)
		}
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}

	payRows, err := r.q.Query(ctx, `
		SELECT id, sale_id, method, amount, status, due_date, paid_at, installment_number, installment_total, COALESCE(note, '')
		FROM payments WHERE sale_id::text = ANY($1::text[]) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p entity.Payment
		err := payRows.Scan(
			&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Status, &p.DueDate, &p.PaidAt,
			&p.InstallmentNumber, &p.InstallmentTotal, &p.Note,
		)
		if err != nil {
			return fmt.Errorf("scan payment: %w", err)
		}
		if s := byID[p.SaleID]; s != nil {
			s.Payments = append(s.Payments, &p)
		}
	}
	return payRows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.ClientID, &s.UserID, &s.Subtotal, &s.Discount, &s.Surcharge, &s.Total,
		&s.Status, &s.Note, &s.Date,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
