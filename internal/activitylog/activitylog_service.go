package activitylog

import (
	"context"
	"io"
	"strings"
	"time"

	activitylogerrors "go-jobmarket/internal/activitylog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxExportRows = 10000

//go:generate mockgen -source=activitylog_service.go -destination=mock/activitylog_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery, page, pageSize int) ([]EntryResponse, int64, error)
	Export(ctx context.Context, q ListQuery, format string, w io.Writer) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activitylog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListQuery, page, pageSize int) ([]EntryResponse, int64, error) {
	f, err := ParseQuery(q)
	if err != nil {
		return nil, 0, err
	}
	f.Page = page
	f.PageSize = pageSize

	entries, total, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("list activity logs failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(entries), total, nil
}

func (s *service) Export(ctx context.Context, q ListQuery, format string, w io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return activitylogerrors.ErrInvalidFormat
	}

	f, err := ParseQuery(q)
	if err != nil {
		return err
	}
	f.Page = 1
	f.PageSize = MaxExportRows

	entries, total, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("export activity logs failed", zap.Error(err))
		return err
	}
	if total > MaxExportRows {
		s.logger.Warn("activity log export rejected",
			zap.Int64("total", total),
			zap.Int("limit", MaxExportRows),
		)
		return activitylogerrors.ErrExportTooLarge
	}

	if format == FormatXLSX {
		return WriteXLSX(w, entries)
	}
	return WriteCSV(w, entries)
}

// ParseQuery validates query-string filters. A date-only "to" includes that whole day.
func ParseQuery(q ListQuery) (ListFilter, error) {
	f := ListFilter{
		PerformedBy: strings.TrimSpace(q.PerformedBy),
		Search:      strings.TrimSpace(q.Search),
	}

	if q.ActionType != "" {
		f.ActionType = ActionType(strings.ToUpper(q.ActionType))
		if !f.ActionType.Valid() {
			return ListFilter{}, activitylogerrors.ErrInvalidActionType
		}
	}
	if q.EntityType != "" {
		f.EntityType = EntityType(strings.ToUpper(q.EntityType))
		if !f.EntityType.Valid() {
			return ListFilter{}, activitylogerrors.ErrInvalidEntityType
		}
	}
	if q.EntityID != "" {
		if _, err := uuid.Parse(q.EntityID); err != nil {
			return ListFilter{}, activitylogerrors.ErrInvalidEntityID
		}
		f.EntityID = q.EntityID
	}

	from, _, err := parseBound(q.From)
	if err != nil {
		return ListFilter{}, err
	}
	to, dateOnly, err := parseBound(q.To)
	if err != nil {
		return ListFilter{}, err
	}
	if to != nil && dateOnly {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return ListFilter{}, activitylogerrors.ErrInvalidDateRange
	}
	f.From = from
	f.To = to
	return f, nil
}

func parseBound(v string) (*time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, false, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, false, activitylogerrors.ErrInvalidDate
	}
	return &t, false, nil
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID.String(),
		ActionType:    string(e.ActionType),
		EntityType:    string(e.EntityType),
		EntityID:      e.EntityID.String(),
		EntityName:    e.EntityName,
		PerformedBy:   e.PerformedBy,
		PerformerRole: e.PerformerRole,
		Notes:         e.Notes,
		Metadata:      e.Metadata,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(entries []Entry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
