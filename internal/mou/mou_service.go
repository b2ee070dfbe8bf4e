package mou

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go-jobmarket/internal/activitylog"
	mouerrors "go-jobmarket/internal/mou/errors"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/shared/counter"
	"go-jobmarket/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"

	MaxDocumentSize = 10 << 20
)

var (
	hundred            = decimal.NewFromInt(100)
	allowedDocumentExt = map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
	}
)

// EmployerDirectory resolves employer display names and existence.
type EmployerDirectory interface {
	NameByID(ctx context.Context, id uuid.UUID) (string, error)
}

//go:generate mockgen -source=mou_service.go -destination=mock/mou_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateMOURequest) (MOUResponse, error)
	Deactivate(ctx context.Context, actor contextutil.Actor, id string) (MOUResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (MOUResponse, error)
	ListByEmployer(ctx context.Context, actor contextutil.Actor, employerID string) ([]MOUResponse, error)
	MouStatus(ctx context.Context, actor contextutil.Actor, employerID string) (MouStatusResponse, error)
	UploadDocument(ctx context.Context, actor contextutil.Actor, id string, doc DocumentUpload) (MOUResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	counter   counter.Repository
	journal   workflow.Journal
	employers EmployerDirectory
	store     DocumentStore
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires MOU management. store may be nil when object storage is not configured.
func NewService(
	db *gorm.DB,
	repo Repository,
	counterRepo counter.Repository,
	journal workflow.Journal,
	employers EmployerDirectory,
	store DocumentStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("mou.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mou.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		journal:   journal,
		employers: employers,
		store:     store,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateMOURequest) (MOUResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create mou requested", zap.String("employer_id", req.EmployerID), zap.String("actor_id", actor.ID))

	if !actor.IsBranchAdmin() {
		return MOUResponse{}, apperror.ErrForbidden
	}

	employerID, err := uuid.Parse(strings.TrimSpace(req.EmployerID))
	if err != nil {
		return MOUResponse{}, mouerrors.ErrInvalidEmployerID
	}
	if err := validateTerms(FeeType(req.FeeType), req.FeeValue, req.SignedAt, req.ValidUntil); err != nil {
		return MOUResponse{}, err
	}

	employerName, err := s.employers.NameByID(ctx, employerID)
	if err != nil {
		return MOUResponse{}, err
	}

	var created MOU
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		journal := s.journal.WithTx(tx)

		prev, err := repo.FindActiveForUpdate(ctx, employerID)
		if err != nil {
			return err
		}

		version, err := s.counter.WithTx(tx).GetNextValue(ctx, employerID.String(), counter.TypeMOUVersion)
		if err != nil {
			return err
		}

		if prev != nil {
			if _, err := repo.Deactivate(ctx, prev.ID); err != nil {
				return err
			}
			if _, err := journal.Append(ctx, workflow.Transition{
				Action:     activitylog.ActionMOUDeactivated,
				EntityID:   prev.ID,
				EntityName: entityName(employerName, prev.Version),
				EmployerID: employerID.String(),
				From:       StatusActive,
				To:         StatusInactive,
				Actor:      actor,
				Notes:      fmt.Sprintf("superseded by version %d", version),
			}); err != nil {
				return err
			}
		}

		created = MOU{
			ID:            uuid.New(),
			EmployerID:    employerID,
			BranchAdminID: actor.ID,
			FeeType:       FeeType(req.FeeType),
			FeeValue:      req.FeeValue,
			SignedAt:      req.SignedAt.UTC(),
			ValidUntil:    utcPtr(req.ValidUntil),
			IsActive:      true,
			Version:       int(version),
		}
		if err := repo.Create(ctx, &created); err != nil {
			return err
		}

		metadata := map[string]any{
			"version":   created.Version,
			"fee_type":  string(created.FeeType),
			"fee_value": created.FeeValue.StringFixed(2),
		}
		if prev != nil {
			metadata["superseded_id"] = prev.ID.String()
		}
		_, err = journal.Append(ctx, workflow.Transition{
			Action:     activitylog.ActionMOUCreated,
			EntityID:   created.ID,
			EntityName: entityName(employerName, created.Version),
			EmployerID: employerID.String(),
			To:         StatusActive,
			Actor:      actor,
			Metadata:   metadata,
		})
		return err
	})
	obs.RecordTransition("mou", "create", err)
	if err != nil {
		log.Warn("create mou failed", zap.String("employer_id", employerID.String()), zap.Error(err))
		return MOUResponse{}, err
	}

	log.Info("mou created",
		zap.String("mou_id", created.ID.String()),
		zap.String("employer_id", employerID.String()),
		zap.Int("version", created.Version),
	)
	return s.mapToResponse(created), nil
}

func (s *service) Deactivate(ctx context.Context, actor contextutil.Actor, id string) (MOUResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !actor.IsBranchAdmin() {
		return MOUResponse{}, apperror.ErrForbidden
	}
	mouID, err := uuid.Parse(id)
	if err != nil {
		return MOUResponse{}, mouerrors.ErrInvalidMOUID
	}

	var m *MOU
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		m, err = repo.FindByIDForUpdate(ctx, mouID)
		if err != nil {
			return err
		}
		if !m.IsActive {
			return apperror.InvalidTransition("mou", StatusInactive, "deactivate")
		}

		n, err := repo.Deactivate(ctx, mouID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.InvalidTransition("mou", StatusInactive, "deactivate")
		}
		m.IsActive = false

		name, err := s.employers.NameByID(ctx, m.EmployerID)
		if err != nil {
			return err
		}
		_, err = s.journal.WithTx(tx).Append(ctx, workflow.Transition{
			Action:     activitylog.ActionMOUDeactivated,
			EntityID:   m.ID,
			EntityName: entityName(name, m.Version),
			EmployerID: m.EmployerID.String(),
			From:       StatusActive,
			To:         StatusInactive,
			Actor:      actor,
		})
		return err
	})
	obs.RecordTransition("mou", "deactivate", err)
	if err != nil {
		log.Warn("deactivate mou failed", zap.String("mou_id", id), zap.Error(err))
		return MOUResponse{}, err
	}

	log.Info("mou deactivated", zap.String("mou_id", id))
	return s.mapToResponse(*m), nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (MOUResponse, error) {
	mouID, err := uuid.Parse(id)
	if err != nil {
		return MOUResponse{}, mouerrors.ErrInvalidMOUID
	}

	m, err := s.repo.FindByID(ctx, mouID)
	if err != nil {
		return MOUResponse{}, err
	}
	if !actor.CanActForEmployer(m.EmployerID.String()) {
		return MOUResponse{}, mouerrors.ErrMOUNotFound(id)
	}
	return s.mapToResponse(*m), nil
}

func (s *service) ListByEmployer(ctx context.Context, actor contextutil.Actor, employerID string) ([]MOUResponse, error) {
	eid, err := uuid.Parse(employerID)
	if err != nil {
		return nil, mouerrors.ErrInvalidEmployerID
	}
	if !actor.CanActForEmployer(eid.String()) {
		return nil, apperror.ErrForbidden
	}

	mous, err := s.repo.ListByEmployer(ctx, eid)
	if err != nil {
		return nil, err
	}

	resp := make([]MOUResponse, len(mous))
	for i, m := range mous {
		resp[i] = s.mapToResponse(m)
	}
	return resp, nil
}

// MouStatus exposes the approval gate standalone so callers can pre-filter.
func (s *service) MouStatus(ctx context.Context, actor contextutil.Actor, employerID string) (MouStatusResponse, error) {
	eid, err := uuid.Parse(employerID)
	if err != nil {
		return MouStatusResponse{}, mouerrors.ErrInvalidEmployerID
	}
	if !actor.CanActForEmployer(eid.String()) {
		return MouStatusResponse{}, apperror.ErrForbidden
	}

	now := s.now()
	active, err := s.repo.ListActiveByEmployer(ctx, eid)
	if err != nil {
		return MouStatusResponse{}, err
	}

	resp := MouStatusResponse{
		EmployerID:   eid.String(),
		HasActiveMou: HasActiveMou(active, now),
		CheckedAt:    now.UTC().Format(time.RFC3339),
	}
	if resp.HasActiveMou {
		for _, m := range active {
			if m.IsValidAt(now) {
				r := s.mapToResponse(m)
				resp.ActiveMOU = &r
				break
			}
		}
	}
	return resp, nil
}

func (s *service) UploadDocument(ctx context.Context, actor contextutil.Actor, id string, doc DocumentUpload) (MOUResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !actor.IsBranchAdmin() {
		return MOUResponse{}, apperror.ErrForbidden
	}
	if s.store == nil {
		return MOUResponse{}, mouerrors.ErrStorageUnavailable
	}
	mouID, err := uuid.Parse(id)
	if err != nil {
		return MOUResponse{}, mouerrors.ErrInvalidMOUID
	}
	if doc.Body == nil || doc.Size <= 0 {
		return MOUResponse{}, mouerrors.ErrDocumentRequired
	}
	if doc.Size > MaxDocumentSize {
		return MOUResponse{}, mouerrors.ErrDocumentTooLarge
	}
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	contentType, ok := allowedDocumentExt[ext]
	if !ok {
		return MOUResponse{}, mouerrors.ErrDocumentType
	}

	m, err := s.repo.FindByID(ctx, mouID)
	if err != nil {
		return MOUResponse{}, err
	}

	key := fmt.Sprintf("mous/%s/%s/v%d%s", m.EmployerID, m.ID, m.Version, ext)
	if err := s.store.Put(ctx, key, doc.Body, doc.Size, contentType); err != nil {
		log.Error("store mou document failed", zap.String("mou_id", id), zap.String("key", key), zap.Error(err))
		return MOUResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Document storage is unavailable", http.StatusServiceUnavailable)
	}
	if err := s.repo.SetDocumentKey(ctx, mouID, key); err != nil {
		return MOUResponse{}, err
	}
	m.DocumentKey = &key

	log.Info("mou document stored", zap.String("mou_id", id), zap.String("key", key))
	return s.mapToResponse(*m), nil
}

func validateTerms(feeType FeeType, fee decimal.Decimal, signedAt time.Time, validUntil *time.Time) error {
	if !feeType.Valid() {
		return mouerrors.ErrInvalidFeeType
	}
	if !fee.IsPositive() {
		return mouerrors.ErrFeeNotPositive
	}
	if !fee.Equal(fee.Round(2)) {
		return mouerrors.ErrFeeScale
	}
	if feeType == FeePercentage && fee.GreaterThan(hundred) {
		return mouerrors.ErrPercentageRange
	}
	if signedAt.IsZero() {
		return mouerrors.ErrSignedAtRequired
	}
	if validUntil != nil && !validUntil.After(signedAt) {
		return mouerrors.ErrValidityWindow
	}
	return nil
}

func entityName(employerName string, version int) string {
	return fmt.Sprintf("%s MOU v%d", employerName, version)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (s *service) mapToResponse(m MOU) MOUResponse {
	resp := MOUResponse{
		ID:            m.ID.String(),
		EmployerID:    m.EmployerID.String(),
		BranchAdminID: m.BranchAdminID,
		FeeType:       string(m.FeeType),
		FeeValue:      m.FeeValue.StringFixed(2),
		SignedAt:      m.SignedAt.UTC().Format(time.RFC3339),
		IsActive:      m.IsActive,
		IsValid:       m.IsValidAt(s.now()),
		Version:       m.Version,
		DocumentKey:   m.DocumentKey,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.ValidUntil != nil {
		v := m.ValidUntil.UTC().Format(time.RFC3339)
		resp.ValidUntil = &v
	}
	return resp
}
