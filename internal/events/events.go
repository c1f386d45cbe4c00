// events — публикация доменных событий объявлений во внешний брокер.
// events.go - контракт и формат события.
// rabbitmq/ - реализация поверх RabbitMQ.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Действия жизненного цикла объявления; используются и как routing key.
const (
	ActionCreated = "listing.created"
	ActionUpdated = "listing.updated"
	ActionDeleted = "listing.deleted"
)

// Event — доменное событие объявления.
type Event struct {
	Action     string    `json:"action"`
	ListingID  uuid.UUID `json:"listing_id"`
	UserRef    uuid.UUID `json:"user_ref"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Events — контракт публикации событий.
// Публикация — best-effort: сбой публикации не должен проваливать
// сохранение объявления, вызывающий обязан лишь залогировать ошибку.
type Events interface {
	Publish(ctx context.Context, event Event) error
}
