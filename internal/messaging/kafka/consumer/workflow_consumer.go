package consumer

import (
	"context"
	"encoding/json"

	"go-jobmarket/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// CacheInvalidator drops derived read models that a transition made stale.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ConsumeWorkflowTransitions invalidates dashboard caches for every committed
// transition. A message is committed only after the cache was dropped, except
// for undecodable payloads which are committed and skipped.
func ConsumeWorkflowTransitions(
	ctx context.Context,
	reader MessageReader,
	invalidator CacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.workflow_transition")
	log.Info("workflow transition consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("workflow transition consumer stopped")
				return
			}
			log.Error("fetch workflow transition message failed", zap.Error(err))
			continue
		}

		var event events.WorkflowTransitionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode workflow transition event failed", zap.Error(err), zap.Int64("offset", msg.Offset))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := invalidator.Invalidate(ctx); err != nil {
			log.Error("invalidate stats cache failed",
				zap.String("event_type", event.EventType),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit workflow transition message failed", zap.Error(err))
			continue
		}

		log.Info("workflow transition handled",
			zap.String("event_type", event.EventType),
			zap.String("entity_type", event.EntityType),
			zap.String("entity_id", event.EntityID),
			zap.String("to_status", event.ToStatus),
		)
	}
}
