// Package kafka wraps the franz-go client with connection retry and a small
// synchronous produce API.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers       []string
	ClientID      string
	MaxRetries    int
	RetryInterval time.Duration
}

// Producer wraps a kgo.Client for synchronous publishing
type Producer struct {
	client *kgo.Client
}

// NewProducer creates a new Kafka producer with retry logic
func NewProducer(ctx context.Context, cfg *ProducerConfig) (*Producer, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "reservation-producer"
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(clientID),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 2 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryInterval)
		}
		if lastErr = client.Ping(ctx); lastErr == nil {
			return &Producer{client: client}, nil
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to kafka after %d attempts: %w", maxRetries+1, lastErr)
}

// Produce publishes a record and waits for the broker acknowledgement
func (p *Producer) Produce(ctx context.Context, topic, key string, value []byte, headers map[string]string) error {
	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying client
func (p *Producer) Close() {
	if p.client != nil {
		p.client.Close()
	}
}
