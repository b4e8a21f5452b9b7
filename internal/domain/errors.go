package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrSaleNotFound      = fmt.Errorf("venta no encontrada: %w", ErrNotFound)
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = fmt.Errorf("cantidad inválida: %w", ErrInvalidInput)
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrDuplicate         = fmt.Errorf("recurso duplicado: %w", ErrConflict)
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoActivePrice     = errors.New("producto sin precio activo")
	ErrSaleCreation      = errors.New("error al crear la venta")
)

// StockError identifica el producto que no tiene stock suficiente.
type StockError struct {
	ProductID   string
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s", e.ProductName)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// PriceError identifica el producto sin precio activo.
type PriceError struct {
	ProductID   string
	ProductName string
}

func (e *PriceError) Error() string {
	if e.ProductName == "" {
		return fmt.Sprintf("el producto %s no posee precio activo", e.ProductID)
	}
	return fmt.Sprintf("el producto %s no posee precio activo", e.ProductName)
}

func (e *PriceError) Unwrap() error { return ErrNoActivePrice }

// SaleCreationError envuelve una falla inesperada de almacenamiento durante la creación de una venta.
type SaleCreationError struct {
	Cause error
}

func (e *SaleCreationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSaleCreation.Error(), e.Cause)
}

// Unwrap expone tanto ErrSaleCreation como la causa original a errors.Is/As.
func (e *SaleCreationError) Unwrap() []error { return []error{ErrSaleCreation, e.Cause} }
