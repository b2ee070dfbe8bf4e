package activitylog

import (
	"context"
	"time"

	activitylogerrors "go-jobmarket/internal/activitylog/errors"
	"go-jobmarket/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder appends transition entries. State machine services call it inside
// the same transaction that writes the new status.
type Recorder interface {
	WithTx(tx *gorm.DB) Recorder
	Record(ctx context.Context, in RecordInput) (*Entry, error)
}

type recorder struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("activitylog.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.recorder")
	}
	return &recorder{repo: repo, now: time.Now, logger: l}
}

func (r *recorder) WithTx(tx *gorm.DB) Recorder {
	return &recorder{repo: r.repo.WithTx(tx), now: r.now, logger: r.logger}
}

func (r *recorder) Record(ctx context.Context, in RecordInput) (*Entry, error) {
	if !in.Action.Valid() {
		return nil, activitylogerrors.ErrInvalidActionType
	}
	if in.Actor.ID == "" {
		return nil, activitylogerrors.ErrMissingActor
	}

	entry := &Entry{
		ID:            uuid.New(),
		ActionType:    in.Action,
		EntityType:    in.Action.EntityType(),
		EntityID:      in.EntityID,
		EntityName:    in.EntityName,
		PerformedBy:   in.Actor.ID,
		PerformerRole: in.Actor.Role,
		Notes:         in.Notes,
		Metadata:      buildMetadata(ctx, in),
		CreatedAt:     r.now().UTC(),
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("record activity failed", contextutil.ExtractMetadata(ctx).Fields(
			zap.String("action_type", string(in.Action)),
			zap.String("entity_id", in.EntityID.String()),
			zap.Error(err),
		)...)
		return nil, err
	}
	return entry, nil
}

func buildMetadata(ctx context.Context, in RecordInput) datatypes.JSONMap {
	md := datatypes.JSONMap{}
	for k, v := range in.Metadata {
		md[k] = v
	}
	if in.Before != nil {
		md["before"] = in.Before
	}
	if in.After != nil {
		md["after"] = in.After
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		md["request_id"] = rid
	}
	return md
}
