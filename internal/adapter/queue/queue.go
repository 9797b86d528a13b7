package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// New selects the queue backend by provider name: "nats" or "rabbitmq".
func New(provider, url string, log *zap.Logger) (MessageQueue, error) {
	switch provider {
	case "nats":
		return NewNATSQueue(url, log)
	case "rabbitmq":
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unknown queue provider: %s", provider)
	}
}
