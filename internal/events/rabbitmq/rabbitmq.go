// rabbitmq предоставляет реализацию events.Events на базе RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avertine/listings-service/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout — верхняя граница ожидания подтверждения публикации.
const publishTimeout = 10 * time.Second

// Publisher — адаптер RabbitMQ: одно соединение, один канал,
// topic-exchange с routing key по действию события.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// New подключается к брокеру и объявляет durable topic-exchange.
func New(url, exchange string) (*Publisher, error) {
	const op = "events/rabbitmq/New"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: channel: %w", op, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: exchange_declare: %w", op, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish сериализует событие в JSON и публикует его с persistent-доставкой.
// Routing key — действие события (listing.created/updated/deleted).
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	const op = "events/rabbitmq/Publish"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(publishCtx, p.exchange, event.Action, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("%s: publish: %w", op, err)
	}

	return nil
}

// Close закрывает канал и соединение.
// Должен вызываться при остановке приложения.
func (p *Publisher) Close() {
	_ = p.ch.Close()
	_ = p.conn.Close()
}

// Проверка выполнения контракта.
var _ events.Events = (*Publisher)(nil)
