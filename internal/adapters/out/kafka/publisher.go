// Package kafka delivers lifecycle notifications to the messaging
// collaborators over Kafka. The engine publishes after commit; consumers on
// the other side turn the messages into customer emails and push alerts.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts kafka.Writer so tests can capture messages.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// statusChangedMessage is the wire form of a committed transition.
type statusChangedMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ActorRole   string    `json:"actor_role"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// deliveryCodeMessage carries a freshly issued confirmation code. The
// messaging service resolves the customer's contact address; the code never
// appears in any API response.
type deliveryCodeMessage struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Code       string    `json:"code"`
	IssuedAt   time.Time `json:"issued_at"`
}

// Publisher writes lifecycle events and delivery codes to their topics,
// keyed by order id so one order's messages stay in partition order.
type Publisher struct {
	w           messageWriter
	statusTopic string
	codeTopic   string
}

// NewPublisher creates a Publisher over the given brokers.
func NewPublisher(brokers []string, statusTopic, codeTopic string) *Publisher {
	return newPublisherWithWriter(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}, statusTopic, codeTopic)
}

func newPublisherWithWriter(w messageWriter, statusTopic, codeTopic string) *Publisher {
	return &Publisher{
		w:           w,
		statusTopic: statusTopic,
		codeTopic:   codeTopic,
	}
}

// PublishStatusChanged writes a committed transition to the status topic.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	value, err := json.Marshal(statusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		FromStatus:  event.FromStatus.String(),
		ToStatus:    event.ToStatus.String(),
		ActorRole:   event.ActorRole.String(),
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return errors.Wrap(err, "encode status change")
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.statusTopic,
		Key:   []byte(event.OrderID.String()),
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// SendDeliveryCode writes an issued confirmation code to the code topic.
func (p *Publisher) SendDeliveryCode(
	ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, code string,
) error {
	value, err := json.Marshal(deliveryCodeMessage{
		OrderID:    orderID.String(),
		CustomerID: customerID.String(),
		Code:       code,
		IssuedAt:   time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode delivery code")
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.codeTopic,
		Key:   []byte(orderID.String()),
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}
