package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-ordering-system/internal/connections/rabbitmq"
	"food-ordering-system/internal/domain"
)

// Notifier delivers order events to the customer-facing chat channel. The
// chat service itself is an external collaborator; we only hand messages to
// the broker. Callers treat failures as log-only.
type Notifier interface {
	OrderPlaced(ctx context.Context, o domain.Order) error
	RefundProcessed(ctx context.Context, o domain.Order) error
}

type Message struct {
	Type       string    `json:"type"`
	OrderID    int       `json:"order_id"`
	UserID     int       `json:"user_id"`
	SenderRole string    `json:"sender_role"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

const exchange = "notifications_fanout"

type RabbitNotifier struct {
	client *rabbitmq.Client
}

func NewRabbitNotifier(client *rabbitmq.Client) *RabbitNotifier {
	return &RabbitNotifier{client: client}
}

func (n *RabbitNotifier) OrderPlaced(ctx context.Context, o domain.Order) error {
	return n.publish(ctx, Message{
		Type:       "order_placed",
		OrderID:    o.ID,
		UserID:     o.UserID,
		SenderRole: "system",
		SenderName: "System",
		Text:       fmt.Sprintf("Order #%d has been placed. Total: %s", o.ID, o.Total.StringFixed(2)),
		OccurredAt: time.Now().UTC(),
	})
}

func (n *RabbitNotifier) RefundProcessed(ctx context.Context, o domain.Order) error {
	return n.publish(ctx, Message{
		Type:       "refund_processed",
		OrderID:    o.ID,
		UserID:     o.UserID,
		SenderRole: "admin",
		SenderName: "Admin",
		Text: fmt.Sprintf("Your refund of %s for Order #%d has been processed. "+
			"The amount will be credited to your account within 3-5 business days.",
			o.Total.StringFixed(2), o.ID),
		OccurredAt: time.Now().UTC(),
	})
}

func (n *RabbitNotifier) publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return n.client.Publish(ctx, exchange, "", body, nil, "application/json", true)
}

// Nop is used when the broker is not configured.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, domain.Order) error     { return nil }
func (Nop) RefundProcessed(context.Context, domain.Order) error { return nil }
