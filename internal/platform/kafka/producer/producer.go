// Package producer publishes messages to Kafka with franz-go.
package producer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is a single record to publish.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Config holds producer settings.
type Config struct {
	Brokers        []string
	ClientID       string
	ProduceTimeout time.Duration
}

// Producer wraps a franz-go client for synchronous, fully acknowledged
// publishing.
type Producer struct {
	client  *kgo.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a producer. Returns nil when no brokers are configured.
func New(cfg Config, logger *slog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "credo-consent"
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(clientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	timeout := cfg.ProduceTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Producer{client: client, timeout: timeout, logger: logger}, nil
}

// Publish writes msg and waits for the broker acknowledgement.
func (p *Producer) Publish(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	record := &kgo.Record{
		Topic: msg.Topic,
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", msg.Topic, err)
	}
	return nil
}

// EnsureTopic creates topic when it does not exist yet.
func (p *Producer) EnsureTopic(ctx context.Context, topic string, partitions int32, replication int16) error {
	admin := kadm.NewClient(p.client)
	resp, err := admin.CreateTopic(ctx, partitions, replication, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	if resp.Err == nil && p.logger != nil {
		p.logger.Info("kafka topic created", "topic", topic, "partitions", partitions)
	}
	return nil
}

// Health pings the seed brokers.
func (p *Producer) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}
