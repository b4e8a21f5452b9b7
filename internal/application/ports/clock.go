package ports

import "time"

// Clock provee la hora actual a los casos de uso; los tests inyectan un reloj fijo.
type Clock interface {
	Now() time.Time
}

// SystemClock usa la hora del sistema en UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock devuelve siempre el mismo instante.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
