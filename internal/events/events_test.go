package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/idine/internal/models"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
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

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	rec := models.OrderRecord{
		ID:         "o1",
		CreatedAt:  100,
		Items:      []models.MenuItem{{ID: "toast", Price: 6}, {ID: "toast", Price: 6}},
		TotalPrice: 12,
	}
	ev := NewOrderPlaced("alice", rec)
	ev.TipPercent = 15
	ev.LoyaltyID = "ID-4821"
	require.NoError(t, p.PublishOrderPlaced(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "o1", string(w.msgs[0].Key))

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, []string{"toast", "toast"}, got.ItemIDs)
	assert.Equal(t, 12, got.TotalPrice)
	assert.Equal(t, 15, got.TipPercent)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "ID-4821", got.LoyaltyID)
	assert.Contains(t, string(w.msgs[0].Value), `"loyalty_id":"ID-4821"`)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("broker unavailable")})
	err := p.PublishOrderPlaced(context.Background(), OrderPlaced{OrderID: "o1"})
	assert.ErrorContains(t, err, "broker unavailable")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "orders")
	assert.Equal(t, "orders", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), OrderPlaced{}))
	assert.NoError(t, p.Close())
}

func TestOrderPlacedOmitsEmptyLoyaltyID(t *testing.T) {
	data, err := json.Marshal(NewOrderPlaced("alice", models.OrderRecord{ID: "o1"}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "loyalty_id")
}
