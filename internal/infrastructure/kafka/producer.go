// Package kafka publica los eventos de la tienda en un topic de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/config"
	"github.com/renexpress/storefront-api/pkg/logger"
)

var (
	_ repository.EventPublisher = (*Producer)(nil)
	_ repository.EventPublisher = Noop{}
)

// Producer escribe eventos JSON; la clave decide la partición.
type Producer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewProducer construye el writer con balanceo por hash de clave.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("kafka")
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("messages", len(messages)).Msg("error del productor")
			}
		},
	}
	return &Producer{writer: writer, log: log}
}

// Publish serializa event y lo escribe con key.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("kafka: publicar en %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close vacía el buffer y cierra las conexiones.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Noop descarta los eventos; se usa cuando no hay brokers configurados.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
