package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jakia12/bizconnect-backend/config"
)

const (
	RoutingOrderPlaced    = "order.placed"
	RoutingOrderStatus    = "order.status"
	RoutingOrderCancelled = "order.cancelled"
)

type OrderEvent struct {
	OrderID     string  `json:"orderId"`
	BuyerID     string  `json:"buyerId"`
	SellerID    string  `json:"sellerId"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// Publisher pushes order lifecycle events to an AMQP topic exchange.
// It is optional: a nil Publisher drops every publish, so callers never
// guard for it. Notification records in Mongo remain the source of
// truth either way.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	if cfg.RabbitMQURL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(
		cfg.OrderExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("Connected to RabbitMQ, exchange %q", cfg.OrderExchange)
	return &Publisher{conn: conn, channel: channel, exchange: cfg.OrderExchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, event OrderEvent) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
