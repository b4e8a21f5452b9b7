package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator(t *testing.T) {
	cases := []struct {
		name                             string
		stock, cost, qty, unitCost, want string
	}{
		{"promedio ponderado", "10", "5.00", "5", "8.00", "6.00"},
		{"sin stock previo usa costo de entrada", "0", "0", "3", "7.50", "7.50"},
		{"redondeo half up", "1", "1.00", "2", "1.0075", "1.01"},
		{"stock resultante cero", "-2", "4.00", "2", "3.00", "3.00"},
		{"cantidades fraccionarias", "2.500", "4.00", "0.500", "10.00", "5.00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := inventory.CostCalculator(d(c.stock), d(c.cost), d(c.qty), d(c.unitCost))
			assert.Truef(t, got.Equal(d(c.want)), "obtenido %s, esperado %s", got, c.want)
		})
	}
}

func TestMovementValue(t *testing.T) {
	assert.True(t, inventory.MovementValue(d("8.00"), d("5")).Equal(d("40.00")))
	assert.True(t, inventory.MovementValue(d("0.333"), d("3")).Equal(d("1.00")))
}
