// Package events publica en una lista de Redis los eventos posteriores al commit
// (venta creada, movimiento de stock, cambio de precio, stock bajo el mínimo).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
)

var _ ports.EventPublisher = (*RedisPublisher)(nil)

// Envelope es el formato de cada elemento encolado.
type Envelope struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// RedisPublisher encola eventos con LPUSH; los consumidores los retiran con BRPOP.
type RedisPublisher struct {
	rdb   redis.Cmdable
	queue string
	clock ports.Clock
}

// NewRedisPublisher construye el publicador sobre la cola indicada.
func NewRedisPublisher(rdb redis.Cmdable, queue string, clock ports.Clock) *RedisPublisher {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &RedisPublisher{rdb: rdb, queue: queue, clock: clock}
}

// Publish serializa el evento y lo agrega a la cola.
func (p *RedisPublisher) Publish(ctx context.Context, event string, payload any) error {
	encoded, err := Encode(event, payload, p.clock.Now())
	if err != nil {
		return err
	}
	if err := p.rdb.LPush(ctx, p.queue, encoded).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", p.queue, err)
	}
	return nil
}

// Encode arma el Envelope JSON de un evento.
func Encode(event string, payload any, at time.Time) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Type: event, Payload: data, OccurredAt: at.UTC()})
}
