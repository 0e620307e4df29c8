package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/openbank/ledger/pkg/config"
)

// KafkaPublisher writes TransferApplied events to a Kafka topic, keyed by
// account id so per-account ordering is preserved.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the configured brokers and
// topic. Brokers is a comma-separated list.
func NewKafkaPublisher(cfg *config.Kafka) *KafkaPublisher {
	brokers := strings.Split(cfg.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishTransferApplied implements Publisher.
func (p *KafkaPublisher) PublishTransferApplied(ctx context.Context, evt TransferApplied) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.AccountID.String()),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
