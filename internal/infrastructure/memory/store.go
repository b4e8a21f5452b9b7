// Package memory implementa los repositorios y el TxRunner en memoria. Se usa con
// STORE_DRIVER=memory y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar una falla (FailNext).
const (
	OpProductCreate      = "product.create"
	OpProductUpdateStock = "product.update_stock"
	OpPriceCreate        = "price.create"
	OpMovementCreate     = "movement.create"
	OpSaleCreate         = "sale.create"
	OpSaleItemCreate     = "sale.create_item"
	OpPaymentCreate      = "sale.create_payment"
)

type state struct {
	products  map[string]*entity.Product
	prices    []*entity.Price
	movements []*entity.StockMovement
	sales     []*entity.Sale // solo cabecera
	items     []*entity.SaleItem
	payments  []*entity.Payment
}

func newState() *state {
	return &state{products: make(map[string]*entity.Product)}
}

// clone copia las filas para poder restaurarlas si la transacción falla.
func (s *state) clone() *state {
	out := &state{
		products:  make(map[string]*entity.Product, len(s.products)),
		prices:    make([]*entity.Price, len(s.prices)),
		movements: make([]*entity.StockMovement, len(s.movements)),
		sales:     make([]*entity.Sale, len(s.sales)),
		items:     make([]*entity.SaleItem, len(s.items)),
		payments:  make([]*entity.Payment, len(s.payments)),
	}
	for id, p := range s.products {
		out.products[id] = copyProduct(p)
	}
	for i, p := range s.prices {
		out.prices[i] = copyPrice(p)
	}
	copy(out.movements, s.movements)
	copy(out.sales, s.sales)
	copy(out.items, s.items)
	copy(out.payments, s.payments)
	return out
}

// Store guarda todas las tablas detrás de un único mutex. Una transacción toma el mutex
// completo, lo que equivale a bloquear cualquier fila que toque.
type Store struct {
	mu       sync.Mutex
	data     *state
	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState(), failures: make(map[string]error)}
}

// FailNext hace que la próxima llamada a op devuelva err (tests de rollback).
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) takeFailure(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

// inTx ejecuta fn con el mutex tomado y restaura el estado previo si fn falla.
func (s *Store) inTx(ctx context.Context, fn func(tx *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(s); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// lock toma el mutex para accesos fuera de transacción; dentro de inTx ya está tomado.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ProductRepository devuelve el repositorio de productos fuera de transacción.
func (s *Store) ProductRepository() repository.ProductRepository {
	return &productRepository{store: s}
}

// PriceRepository devuelve el repositorio de precios fuera de transacción.
func (s *Store) PriceRepository() repository.PriceRepository {
	return &priceRepository{store: s}
}

// StockMovementRepository devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) StockMovementRepository() repository.StockMovementRepository {
	return &stockMovementRepository{store: s}
}

// SaleRepository devuelve el repositorio de ventas fuera de transacción.
func (s *Store) SaleRepository() repository.SaleRepository {
	return &saleRepository{store: s}
}

// TxRunner implementa los TxRunner de inventario, precios y ventas sobre el Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el TxRunner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios de movimientos y productos en una transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.store.inTx(ctx, func(tx *Store) error {
		return fn(
			&stockMovementRepository{store: tx, inTx: true},
			&productRepository{store: tx, inTx: true},
		)
	})
}

// RunPricing ejecuta fn con repositorios de precios y productos en una transacción.
func (r *TxRunner) RunPricing(ctx context.Context, fn func(
	priceRepo repository.PriceRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.store.inTx(ctx, func(tx *Store) error {
		return fn(
			&priceRepository{store: tx, inTx: true},
			&productRepository{store: tx, inTx: true},
		)
	})
}

// RunSale ejecuta fn con todos los repositorios que toca una venta en una transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.store.inTx(ctx, func(tx *Store) error {
		return fn(
			&productRepository{store: tx, inTx: true},
			&priceRepository{store: tx, inTx: true},
			&stockMovementRepository{store: tx, inTx: true},
			&saleRepository{store: tx, inTx: true},
		)
	})
}

func paginate(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
