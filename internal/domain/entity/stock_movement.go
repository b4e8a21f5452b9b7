package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entry"      // entrada
	MovementTypeExit       = "exit"       // salida
	MovementTypeAdjustment = "adjustment" // ajuste al valor absoluto
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement es un registro inmutable de cambio de stock.
// Quantity es la cantidad movida (entrada/salida) o el stock resultante (ajuste).
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
	TotalValue *decimal.Decimal
	SaleID     string // venta que originó la salida, vacío si es manual
	Note       string
	CreatedBy  string
	Date       time.Time
}
