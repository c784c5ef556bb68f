// Package events publica los eventos de inventario hacia Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/pkg/config"
)

// EventTypeStockChanged valor del encabezado "event_type".
const EventTypeStockChanged = "StockChanged"

// MessageWriter subconjunto de *kafka.Writer usado por el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa inventory.EventPublisher. Los mensajes se particionan por id de
// pieza para conservar el orden de los movimientos de una misma pieza.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher crea el writer hacia los brokers configurados.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return NewPublisher(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	})
}

// NewPublisher usa un writer ya construido.
func NewPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishStockChanged(ctx context.Context, event inventory.StockChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("evento de stock: serializar: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.PartID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeStockChanged)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("evento de stock: publicar: %w", err)
	}
	return nil
}

// Close vacía el lote pendiente y cierra las conexiones.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

func (NopPublisher) PublishStockChanged(context.Context, inventory.StockChangedEvent) error {
	return nil
}

// Close no hace nada.
func (NopPublisher) Close() error { return nil }
