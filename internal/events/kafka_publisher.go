package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotelhub/reservation/internal/domain"
	"github.com/hotelhub/reservation/pkg/kafka"
	"github.com/hotelhub/reservation/pkg/retry"
)

// KafkaPublisher implements Publisher using Kafka
type KafkaPublisher struct {
	producer    *kafka.Producer
	topic       string
	serviceName string
	retryCfg    *retry.Config
}

// KafkaPublisherConfig contains configuration for the Kafka publisher
type KafkaPublisherConfig struct {
	Brokers     []string
	Topic       string
	ServiceName string
	ClientID    string
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(ctx context.Context, cfg *KafkaPublisherConfig) (*KafkaPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kafka publisher config is required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "booking-events"
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "reservation-engine"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      cfg.ClientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer:    producer,
		topic:       topic,
		serviceName: serviceName,
		retryCfg: &retry.Config{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
	}, nil
}

// PublishBookingConfirmed publishes a booking confirmed event
func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	event := NewBookingEvent(BookingEventConfirmed, booking, uuid.New().String(), p.serviceName)
	return p.publish(ctx, event)
}

// PublishBookingCancelled publishes a booking cancelled event
func (p *KafkaPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking, refund float64) error {
	event := NewBookingEvent(BookingEventCancelled, booking, uuid.New().String(), p.serviceName)
	event.RefundAmount = refund
	return p.publish(ctx, event)
}

// Close closes the publisher
func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

func (p *KafkaPublisher) publish(ctx context.Context, event *BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := map[string]string{
		"event_id":   event.EventID,
		"event_type": string(event.Type),
		"source":     event.Source,
	}

	// Broker hiccups are retried; the reservation itself is already durable.
	return retry.Do(ctx, p.retryCfg, func(ctx context.Context) error {
		return p.producer.Produce(ctx, p.topic, event.BookingID, payload, headers)
	})
}
