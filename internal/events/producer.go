package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

const (
	TypeOrderPlaced        = "order_placed"
	TypeOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     uuid.UUID          `json:"orderId"`
	UserID      uuid.UUID          `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Status      models.OrderStatus `json:"status"`
	At          time.Time          `json:"at"`
}

// Publisher is satisfied by the kafka producer; the services treat a nil
// publisher as "events disabled".
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type KafkaProducer struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaProducer)(nil)

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
