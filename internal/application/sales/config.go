package sales

import "github.com/jhoicas/backoffice-api/internal/domain/installment"

// Config parámetros de la generación de pagos.
type Config struct {
	ReceivableMethod        string // etiqueta del pago pendiente por el saldo
	ReceivableNote          string
	ReceivableDueDays       int
	InstallmentIntervalDays int
}

// DefaultConfig valores por defecto.
func DefaultConfig() Config {
	return Config{
		ReceivableMethod:        "A Receber",
		ReceivableNote:          "Gerado automaticamente (saldo pendente)",
		ReceivableDueDays:       30,
		InstallmentIntervalDays: installment.DefaultIntervalDays,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ReceivableMethod == "" {
		c.ReceivableMethod = def.ReceivableMethod
	}
	if c.ReceivableNote == "" {
		c.ReceivableNote = def.ReceivableNote
	}
	if c.ReceivableDueDays <= 0 {
		c.ReceivableDueDays = def.ReceivableDueDays
	}
	if c.InstallmentIntervalDays <= 0 {
		c.InstallmentIntervalDays = def.InstallmentIntervalDays
	}
	return c
}
