package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/infrastructure/events"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_MensajePorPieza(t *testing.T) {
	w := &fakeWriter{}
	pub := events.NewPublisher(w)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := pub.PublishStockChanged(context.Background(), inventory.StockChangedEvent{
		EventID:       "ev-1",
		PartID:        42,
		PartName:      "Resistor 10k",
		Quantity:      -3,
		StockLevel:    2,
		MinStockLevel: 5,
		BelowMinimum:  true,
		OccurredAt:    at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "ev-1", body["event_id"])
	assert.Equal(t, float64(42), body["part_id"])
	assert.Equal(t, true, body["below_minimum"])

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, events.EventTypeStockChanged, headers["event_type"])

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_ErrorDelBroker(t *testing.T) {
	cause := errors.New("broker no disponible")
	pub := events.NewPublisher(&fakeWriter{err: cause})
	err := pub.PublishStockChanged(context.Background(), inventory.StockChangedEvent{PartID: 1})
	assert.ErrorIs(t, err, cause)
}

func TestNopPublisher(t *testing.T) {
	var pub inventory.EventPublisher = events.NopPublisher{}
	assert.NoError(t, pub.PublishStockChanged(context.Background(), inventory.StockChangedEvent{}))
}
