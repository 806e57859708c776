package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/TheManUnderTheHood/Loomly/models"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the JSON payload published to the orders topic, keyed by
// order ref so all events of one order land on the same partition.
type OrderEvent struct {
	Type       string             `json:"type"`
	OrderRef   string             `json:"order_ref"`
	OwnerID    string             `json:"owner_id"`
	Status     models.OrderStatus `json:"status"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher writes order lifecycle events to Kafka. A nil Publisher is valid
// and publishes nothing, so the API runs fine without brokers configured.
type Publisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

func NewPublisher(brokers, topic string, log zerolog.Logger) *Publisher {
	if brokers == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return &Publisher{writer: writer, log: log}
}

func (p *Publisher) OrderCreated(order *models.Order) {
	p.publish(TypeOrderCreated, order)
}

func (p *Publisher) OrderStatusChanged(order *models.Order) {
	p.publish(TypeOrderStatusChanged, order)
}

func (p *Publisher) publish(eventType string, order *models.Order) {
	if p == nil {
		return
	}

	event := OrderEvent{
		Type:       eventType,
		OrderRef:   order.OrderRef,
		OwnerID:    order.OwnerID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("failed to marshal order event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderRef),
		Value: value,
	})
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Str("order_ref", order.OrderRef).
			Msg("failed to publish order event")
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
