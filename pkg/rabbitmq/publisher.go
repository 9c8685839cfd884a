package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher publishes messages on a fixed topic.
type IPublisher interface {
	PublishMessage(message interface{}) error
	Close()
}

// Publisher holds the shared client and the topic it publishes on.
type Publisher struct {
	client mqtt.Client
	topic  string
	logger *log.Logger
}

// NewPublisher publishes on topic; a nil logger means log.Default().
func NewPublisher(client mqtt.Client, topic string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{client: client, topic: topic, logger: logger}
}

// PublishMessage sends strings and byte slices as-is and JSON-encodes anything else.
func (p *Publisher) PublishMessage(message interface{}) error {
	payload, err := encode(message)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload) // QoS 0 (at most once)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish message: %w", token.Error())
	}

	p.logger.Printf("Published %d bytes to topic '%s'", len(payload), p.topic)
	return nil
}

func (p *Publisher) Close() {
	CloseRabbitMQConn(p.client, p.logger)
}

func encode(message interface{}) ([]byte, error) {
	switch m := message.(type) {
	case string:
		return []byte(m), nil
	case []byte:
		return m, nil
	default:
		b, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("invalid message format: %w", err)
		}
		return b, nil
	}
}
