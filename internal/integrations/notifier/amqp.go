package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RoutingKeyPendingRequest ключ маршрутизации уведомлений о новых заявках
const RoutingKeyPendingRequest = "host.request.pending"

const publishTimeout = 3 * time.Second

// message тело сообщения в брокере
type message struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Kind    domain.NotificationKind `json:"kind"`
	SentAt  time.Time               `json:"sent_at"`
}

// AMQP публикует уведомления в RabbitMQ
type AMQP struct {
	publisher Publisher
	log       Logger
}

// NewAMQP создает уведомитель поверх издателя
func NewAMQP(publisher Publisher, log Logger) *AMQP {
	return &AMQP{publisher: publisher, log: log}
}

// Notify публикует уведомление; доставка не гарантируется
func (a *AMQP) Notify(ctx context.Context, n domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := message{Title: n.Title, Message: n.Message, Kind: n.Kind, SentAt: time.Now()}
	if err := a.publisher.PublishJSON(ctx, RoutingKeyPendingRequest, msg); err != nil {
		a.log.Warn("Notify: failed to publish notification %q: %v", n.Title, err)
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
