package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/IBM/sarama"
)

type EventType string

const (
	EventAuthorCreated       EventType = "author.created"
	EventAuthorDeleted       EventType = "author.deleted"
	EventBookInstanceCreated EventType = "bookinstance.created"
)

type Event struct {
	Type      EventType `json:"type"`
	EntityID  string    `json:"entityId"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends catalog events to one topic, keyed by entity id. Sends go
// through a circuit breaker so an unreachable broker fails fast.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

func NewPublisher(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker) *Publisher {
	if topic == "" {
		topic = CatalogTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		cb:       cb,
	}
}

func (p *Publisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.EntityID),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
