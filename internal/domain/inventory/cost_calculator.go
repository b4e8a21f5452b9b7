package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/normalize"
)

// CostCalculator implementa el costo promedio ponderado de una entrada (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante es cero o negativo devuelve el costo de la entrada. El resultado va a 2 decimales.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return normalize.Money(costoEntrada)
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return normalize.MoneyDiv(num, sum)
}

// MovementValue es el valor total de un movimiento: money(costo * cantidad).
func MovementValue(unitCost, quantity decimal.Decimal) decimal.Decimal {
	return normalize.Money(unitCost.Mul(quantity))
}
