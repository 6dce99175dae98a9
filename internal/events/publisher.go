package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

// MovementsTopic receives one event per committed ledger entry for
// downstream reconciliation consumers.
const MovementsTopic = "caja.movimientos"

// MovementEvent is the wire shape of a published ledger entry.
type MovementEvent struct {
	EntryID      int64     `json:"entryID"`
	Kind         string    `json:"kind"`
	OperationID  string    `json:"operationID"`
	CurrencyCode string    `json:"currencyCode"`
	Amount       string    `json:"amount"`
	IsCredit     bool      `json:"isCredit"`
	BalanceAfter string    `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// MovementPublisher publishes committed ledger entries. Publication is
// best-effort and runs after commit; a publish failure never rolls back
// the movement it describes.
type MovementPublisher interface {
	PublishMovements(ctx context.Context, entries []domain.LedgerEntry) error
}

// KafkaPublisher publishes movement events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to the movements topic.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    MovementsTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishMovements writes one message per entry, keyed by currency so each
// drawer's events stay ordered within a partition.
func (p *KafkaPublisher) PublishMovements(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		event := MovementEvent{
			EntryID:      e.EntryID,
			Kind:         string(e.Kind),
			OperationID:  e.OperationID,
			CurrencyCode: e.Currency.ISOCode(),
			Amount:       e.Amount.String(),
			IsCredit:     e.IsCredit,
			BalanceAfter: e.BalanceAfter.String(),
			CreatedAt:    e.CreatedAt,
			CreatedBy:    e.CreatedBy,
		}
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(e.Currency),
			Value: data,
		})
	}

	return p.writer.WriteMessages(ctx, messages...)
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops all events. Used when no brokers are configured.
type NoopPublisher struct{}

// PublishMovements implements MovementPublisher.
func (NoopPublisher) PublishMovements(context.Context, []domain.LedgerEntry) error {
	return nil
}
