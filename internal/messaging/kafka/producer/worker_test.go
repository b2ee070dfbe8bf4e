package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-jobmarket/internal/messaging/kafka"
	"go-jobmarket/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.pending = append(f.pending, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	written []kafkago.Message
	failKey string
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	ok, err := kafka.NewOutboxEvent(ctx, "ad", "ad-1", "AD_APPROVED", "topic.v1", map[string]string{"id": "ad-1"})
	require.NoError(t, err)
	bad, err := kafka.NewOutboxEvent(ctx, "ad", "ad-2", "AD_REJECTED", "topic.v1", map[string]string{"id": "ad-2"})
	require.NoError(t, err)

	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{ok, bad}}
	writer := &fakeWriter{failKey: "ad-2"}

	sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{ok.ID}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed[bad.ID])
	require.Len(t, writer.written, 1)
	assert.Equal(t, "topic.v1", writer.written[0].Topic)
	assert.Equal(t, "AD_APPROVED", string(writer.written[0].Headers[0].Value))
}

func TestValidateOutboxEvent(t *testing.T) {
	ev, err := kafka.NewOutboxEvent(context.Background(), "mou", "m-1", "MOU_CREATED", "t", struct{}{})
	require.NoError(t, err)
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))

	ev.Status = "lost"
	assert.Error(t, kafka.ValidateOutboxEvent(ev))

	ev.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(ev))
}
