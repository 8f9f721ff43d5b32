package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// Service implements the Publisher interface over Pulsar. When disabled it
// degrades to a no-op so callers never need to branch.
type Service struct {
	config   *Config
	logger   logger.Logger
	client   pulsar.Client
	producer pulsar.Producer
}

// NewService creates a new event publisher
func NewService(config *Config, log logger.Logger) (*Service, error) {
	if !config.Enabled {
		log.LogInfo("Event publishing is disabled", nil)
		return &Service{config: config, logger: log}, nil
	}

	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL:               config.PulsarURL,
		OperationTimeout:  config.OperationTimeout,
		ConnectionTimeout: config.ConnectionTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pulsar client: %v", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: config.Topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create Pulsar producer: %v", err)
	}

	log.LogInfo("Event publisher initialized", map[string]interface{}{
		"topic": config.Topic,
	})

	return &Service{
		config:   config,
		logger:   log,
		client:   client,
		producer: producer,
	}, nil
}

// Publish sends a migration event to the configured topic
func (s *Service) Publish(ctx context.Context, event *MigrationEvent) error {
	if s.producer == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	_, err = s.producer.Send(ctx, &pulsar.ProducerMessage{
		Payload: payload,
		Key:     event.PlanID.String(),
		Properties: map[string]string{
			"eventType": string(event.Type),
		},
	})
	if err != nil {
		return s.logger.LogErrorf(err, "failed to publish %s event for plan %s", event.Type, event.PlanID)
	}

	s.logger.LogDebug("Published migration event", map[string]interface{}{
		"planId": event.PlanID.String(),
		"type":   string(event.Type),
	})
	return nil
}

// Close releases the Pulsar producer and client
func (s *Service) Close() error {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
