package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Nombres de eventos publicados tras el commit.
const (
	EventSaleCreated       = "sale.created"
	EventStockMoved        = "stock.moved"
	EventPriceChanged      = "price.changed"
	EventStockBelowMinimum = "stock.below_minimum"
)

// publishTimeout acota cada publicación en segundo plano.
const publishTimeout = 5 * time.Second

// EventPublisher define el puerto de salida para notificaciones posteriores al commit.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// NopPublisher descarta todos los eventos (sin Redis configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// PublishAsync publica en una goroutine sin bloquear al caller. Una falla solo se registra:
// la operación ya fue confirmada y no se revierte.
func PublishAsync(pub EventPublisher, log zerolog.Logger, event string, payload any) {
	if pub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := pub.Publish(ctx, event, payload); err != nil {
			log.Warn().Err(err).Str("event", event).Msg("no se pudo publicar el evento")
		}
	}()
}
