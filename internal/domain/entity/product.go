package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock único (sin multi-bodega).
// AverageCost es el costo promedio ponderado calculado por las entradas; ActivePrice
// replica el importe del precio activo en el historial.
type Product struct {
	ID           string
	Code         string // código interno o de barras, único cuando se informa
	Name         string
	Stock        decimal.Decimal // cantidad, 3 decimales
	MinimumStock int
	Cost         *decimal.Decimal // último costo de entrada
	AverageCost  *decimal.Decimal
	ActivePrice  *decimal.Decimal
	UnitID       string // unidad de medida
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CostBasis devuelve el costo sobre el que se promedia y se valoran las salidas:
// el promedio si existe, si no el último costo, si no cero.
func (p *Product) CostBasis() decimal.Decimal {
	if p.AverageCost != nil {
		return *p.AverageCost
	}
	if p.Cost != nil {
		return *p.Cost
	}
	return decimal.Zero
}
