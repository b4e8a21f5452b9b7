// Package installment divide un importe en cuotas cuya suma es exactamente el total.
package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/normalize"
)

// DefaultIntervalDays separa los vencimientos de cuotas consecutivas.
const DefaultIntervalDays = 30

// Split devuelve n cuotas: las primeras n-1 valen money(total/n) y la última absorbe
// el resto, de modo que la suma es money(total). n < 1 devuelve ErrInvalidInput.
func Split(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, domain.ErrInvalidInput
	}
	total = normalize.Money(total)
	if n == 1 {
		return []decimal.Decimal{total}, nil
	}
	out := make([]decimal.Decimal, n)
	part := normalize.MoneyDiv(total, decimal.NewFromInt(int64(n)))
	acc := decimal.Zero
	for i := 0; i < n-1; i++ {
		out[i] = part
		acc = acc.Add(part)
	}
	out[n-1] = normalize.Money(total.Sub(acc))
	return out, nil
}

// DueDates calcula el vencimiento de cada cuota: first + intervalDays*i.
// Si first es nil ninguna cuota tiene vencimiento.
func DueDates(first *time.Time, n, intervalDays int) []*time.Time {
	if n < 1 {
		return nil
	}
	out := make([]*time.Time, n)
	if first == nil {
		return out
	}
	for i := 0; i < n; i++ {
		due := first.AddDate(0, 0, intervalDays*i)
		out[i] = &due
	}
	return out
}
