// Package normalize fija la escala de los valores monetarios (2 decimales) y de las
// cantidades (3 decimales). Ambos redondean "half up": los empates se alejan de cero.
package normalize

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces es la escala de cualquier importe persistido o comparado.
	MoneyPlaces int32 = 2
	// QuantityPlaces es la escala de cualquier cantidad de stock.
	QuantityPlaces int32 = 3
)

// Money redondea x a 2 decimales.
func Money(x decimal.Decimal) decimal.Decimal {
	return x.Round(MoneyPlaces)
}

// Quantity redondea x a 3 decimales.
func Quantity(x decimal.Decimal) decimal.Decimal {
	return x.Round(QuantityPlaces)
}

// MoneyDiv divide a entre b y redondea el cociente a 2 decimales sin doble redondeo.
// b no debe ser cero.
func MoneyDiv(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, MoneyPlaces)
}

// MoneyPtr normaliza un importe opcional.
func MoneyPtr(x *decimal.Decimal) *decimal.Decimal {
	if x == nil {
		return nil
	}
	v := Money(*x)
	return &v
}
