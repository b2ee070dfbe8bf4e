// Package workflow holds what every status transition writes next to the
// status change itself: the audit entry and the outbox event.
package workflow

import (
	"context"
	"time"

	"go-jobmarket/internal/activitylog"
	"go-jobmarket/internal/events"
	"go-jobmarket/internal/messaging/kafka"
	"go-jobmarket/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Transition struct {
	Action     activitylog.ActionType
	EntityID   uuid.UUID
	EntityName string
	EmployerID string
	From       string
	To         string
	Actor      contextutil.Actor
	Notes      string
	Metadata   map[string]any
}

// Journal must be bound to the transition's transaction with WithTx so a
// failed append rolls the status change back.
type Journal interface {
	WithTx(tx *gorm.DB) Journal
	Append(ctx context.Context, t Transition) (*activitylog.Entry, error)
}

type journal struct {
	recorder activitylog.Recorder
	outbox   kafka.OutboxRepository
	now      func() time.Time
	logger   *zap.Logger
}

// NewJournal builds a Journal. outbox may be nil, in which case no events are enqueued.
func NewJournal(recorder activitylog.Recorder, outbox kafka.OutboxRepository, logger ...*zap.Logger) Journal {
	l := zap.L().Named("workflow.journal")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.journal")
	}
	return &journal{recorder: recorder, outbox: outbox, now: time.Now, logger: l}
}

func (j *journal) WithTx(tx *gorm.DB) Journal {
	cp := *j
	cp.recorder = j.recorder.WithTx(tx)
	if j.outbox != nil {
		cp.outbox = j.outbox.WithTx(tx)
	}
	return &cp
}

func (j *journal) Append(ctx context.Context, t Transition) (*activitylog.Entry, error) {
	in := activitylog.RecordInput{
		Action:     t.Action,
		EntityID:   t.EntityID,
		EntityName: t.EntityName,
		Actor:      t.Actor,
		Notes:      t.Notes,
		Metadata:   t.Metadata,
	}
	if t.From != "" {
		in.Before = map[string]any{"status": t.From}
	}
	if t.To != "" {
		in.After = map[string]any{"status": t.To}
	}

	entry, err := j.recorder.Record(ctx, in)
	if err != nil {
		j.logger.Error("append activity entry failed",
			zap.String("entity_id", t.EntityID.String()),
			zap.String("action_type", string(t.Action)),
			zap.String("from", t.From),
			zap.String("to", t.To),
			zap.Error(err),
		)
		return nil, err
	}

	if j.outbox == nil {
		return entry, nil
	}

	payload := events.WorkflowTransitionEvent{
		EventType:   string(t.Action),
		EntityType:  string(entry.EntityType),
		EntityID:    t.EntityID.String(),
		EntityName:  t.EntityName,
		EmployerID:  t.EmployerID,
		FromStatus:  t.From,
		ToStatus:    t.To,
		PerformedBy: t.Actor.ID,
		Notes:       t.Notes,
		OccurredAt:  entry.CreatedAt,
	}
	ev, err := kafka.NewOutboxEvent(ctx, aggregateFor(entry.EntityType), t.EntityID.String(), string(t.Action), events.WorkflowTransitionTopic, payload)
	if err != nil {
		return nil, err
	}
	if err := j.outbox.Create(ctx, ev); err != nil {
		j.logger.Error("enqueue transition event failed",
			zap.String("entity_id", t.EntityID.String()),
			zap.String("action_type", string(t.Action)),
			zap.Error(err),
		)
		return nil, err
	}
	return entry, nil
}

func aggregateFor(e activitylog.EntityType) string {
	switch e {
	case activitylog.EntityEmployer:
		return events.AggregateEmployer
	case activitylog.EntityMOU:
		return events.AggregateMOU
	default:
		return events.AggregateAd
	}
}
