package ad

import (
	"context"
	"fmt"
	"strings"
	"time"

	aderrors "go-jobmarket/internal/ad/errors"
	"go-jobmarket/internal/bulk"
	"go-jobmarket/internal/employer"
	"go-jobmarket/internal/mou"
	mouerrors "go-jobmarket/internal/mou/errors"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/shared/counter"
	"go-jobmarket/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompanyLookup resolves the company an ad is posted under.
type CompanyLookup interface {
	FindCompany(ctx context.Context, id uuid.UUID) (*employer.Company, error)
}

//go:generate mockgen -source=ad_service.go -destination=mock/ad_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor contextutil.Actor, req CreateAdRequest) (AdResponse, error)
	UpdateDraft(ctx context.Context, actor contextutil.Actor, id string, req UpdateAdRequest) (AdResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error)
	List(ctx context.Context, actor contextutil.Actor, q ListQuery, page, pageSize int) ([]AdResponse, int64, error)

	Submit(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error)
	Approve(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error)
	Reject(ctx context.Context, actor contextutil.Actor, id, notes string) (AdResponse, error)
	Archive(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error)
	BulkApprove(ctx context.Context, actor contextutil.Actor, ids []string) (bulk.Result, error)
	BulkReject(ctx context.Context, actor contextutil.Actor, ids []string, notes string) (bulk.Result, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	companies CompanyLookup
	mou       mou.Checker
	counter   counter.Repository
	journal   workflow.Journal
	bulk      *bulk.Coordinator
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companies CompanyLookup,
	checker mou.Checker,
	counterRepo counter.Repository,
	journal workflow.Journal,
	coordinator *bulk.Coordinator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("ad.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ad.service")
	}
	if coordinator == nil {
		coordinator = bulk.NewCoordinator(bulk.DefaultConcurrency, bulk.DefaultMaxItems, l)
	}
	return &service{
		db:        db,
		repo:      repo,
		companies: companies,
		mou:       checker,
		counter:   counterRepo,
		journal:   journal,
		bulk:      coordinator,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor contextutil.Actor, req CreateAdRequest) (AdResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create ad requested", zap.String("company_id", req.CompanyID), zap.String("actor_id", actor.ID))

	employerID, err := uuid.Parse(actor.EmployerID)
	if actor.Role != contextutil.RoleEmployer || err != nil {
		return AdResponse{}, aderrors.ErrEmployerAccountRequired
	}
	companyID, err := s.ownedCompany(ctx, employerID, req.CompanyID)
	if err != nil {
		return AdResponse{}, err
	}

	fields := req.CategoryFields.Normalize()
	if err := fields.Validate(); err != nil {
		return AdResponse{}, err
	}

	ad := &Ad{
		ID:             uuid.New(),
		EmployerID:     employerID,
		CompanyID:      companyID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Category:       strings.TrimSpace(req.Category),
		CategoryFields: datatypes.NewJSONType(fields),
		Status:         StatusDraft,
	}
	if ad.Title == "" {
		return AdResponse{}, apperror.RequiredField("title")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := s.now().UTC().Format("2006")
		seq, err := s.counter.WithTx(tx).GetNextValue(ctx, year, counter.TypeAdReference)
		if err != nil {
			return err
		}
		ad.ReferenceNo = fmt.Sprintf("AD-%s-%06d", year, seq)
		return s.repo.WithTx(tx).Create(ctx, ad)
	})
	if err != nil {
		log.Error("create ad failed", zap.String("employer_id", employerID.String()), zap.Error(err))
		return AdResponse{}, err
	}

	log.Info("ad created", zap.String("ad_id", ad.ID.String()), zap.String("reference_no", ad.ReferenceNo))
	return mapAd(ad), nil
}

func (s *service) UpdateDraft(ctx context.Context, actor contextutil.Actor, id string, req UpdateAdRequest) (AdResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	adID, err := uuid.Parse(id)
	if err != nil {
		return AdResponse{}, aderrors.ErrInvalidAdID
	}

	var updated *Ad
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ad, err := repo.FindByIDForUpdate(ctx, adID)
		if err != nil {
			return err
		}
		if !actor.CanActForEmployer(ad.EmployerID.String()) {
			return aderrors.ErrAdNotFound(id)
		}
		if ad.Status != StatusDraft {
			return apperror.InvalidTransition("ad", string(ad.Status), "update")
		}

		if req.CompanyID != nil {
			if ad.CompanyID, err = s.ownedCompany(ctx, ad.EmployerID, *req.CompanyID); err != nil {
				return err
			}
		}
		if req.Title != nil {
			if ad.Title = strings.TrimSpace(*req.Title); ad.Title == "" {
				return apperror.RequiredField("title")
			}
		}
		if req.Description != nil {
			ad.Description = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			ad.Category = strings.TrimSpace(*req.Category)
		}
		if req.CategoryFields != nil {
			fields := req.CategoryFields.Normalize()
			if err := fields.Validate(); err != nil {
				return err
			}
			ad.CategoryFields = datatypes.NewJSONType(fields)
		}

		n, err := repo.UpdateDraft(ctx, ad)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.InvalidTransition("ad", string(ad.Status), "update")
		}
		updated = ad
		return nil
	})
	if err != nil {
		log.Warn("update ad draft failed", zap.String("ad_id", id), zap.Error(err))
		return AdResponse{}, err
	}

	updated.UpdatedAt = s.now()
	return mapAd(updated), nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error) {
	adID, err := uuid.Parse(id)
	if err != nil {
		return AdResponse{}, aderrors.ErrInvalidAdID
	}

	ad, err := s.repo.FindByID(ctx, adID)
	if err != nil {
		return AdResponse{}, err
	}
	if !actor.CanActForEmployer(ad.EmployerID.String()) {
		return AdResponse{}, aderrors.ErrAdNotFound(id)
	}
	return mapAd(ad), nil
}

func (s *service) List(ctx context.Context, actor contextutil.Actor, q ListQuery, page, pageSize int) ([]AdResponse, int64, error) {
	f := ListFilter{
		Status:     Status(strings.ToUpper(strings.TrimSpace(q.Status))),
		EmployerID: strings.TrimSpace(q.EmployerID),
		CompanyID:  strings.TrimSpace(q.CompanyID),
		Search:     q.Search,
		Page:       page,
		PageSize:   pageSize,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, aderrors.ErrInvalidStatus
	}
	if f.EmployerID != "" {
		if _, err := uuid.Parse(f.EmployerID); err != nil {
			return nil, 0, apperror.InvalidField("employer_id")
		}
	}
	if f.CompanyID != "" {
		if _, err := uuid.Parse(f.CompanyID); err != nil {
			return nil, 0, aderrors.ErrInvalidCompanyID
		}
	}
	if !actor.IsBranchAdmin() {
		if actor.EmployerID == "" {
			return []AdResponse{}, 0, nil
		}
		f.EmployerID = actor.EmployerID
	}

	ads, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]AdResponse, len(ads))
	for i := range ads {
		resp[i] = mapAd(&ads[i])
	}
	return resp, total, nil
}

func (s *service) Submit(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error) {
	return s.transition(ctx, actor, id, ActionSubmit, "")
}

func (s *service) Approve(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error) {
	return s.transition(ctx, actor, id, ActionApprove, "")
}

func (s *service) Reject(ctx context.Context, actor contextutil.Actor, id, notes string) (AdResponse, error) {
	return s.transition(ctx, actor, id, ActionReject, notes)
}

func (s *service) Archive(ctx context.Context, actor contextutil.Actor, id string) (AdResponse, error) {
	return s.transition(ctx, actor, id, ActionArchive, "")
}

// transition runs one status change in a single transaction: lock, check the
// table, check the MOU gate on approval, guarded update, journal.
func (s *service) transition(ctx context.Context, actor contextutil.Actor, id string, action Action, notes string) (AdResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("ad_id", id),
		zap.String("action", string(action)),
		zap.String("actor_id", actor.ID),
	)
	log.Debug("ad transition requested")

	if (action == ActionApprove || action == ActionReject) && !actor.IsBranchAdmin() {
		return AdResponse{}, apperror.ErrForbidden
	}
	notes = strings.TrimSpace(notes)
	if action == ActionReject && notes == "" {
		return AdResponse{}, apperror.RequiredField("notes")
	}
	adID, err := uuid.Parse(id)
	if err != nil {
		return AdResponse{}, aderrors.ErrInvalidAdID
	}

	var updated *Ad
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ad, err := repo.FindByIDForUpdate(ctx, adID)
		if err != nil {
			return err
		}
		if !actor.CanActForEmployer(ad.EmployerID.String()) {
			return aderrors.ErrAdNotFound(id)
		}

		from := ad.Status
		to, err := Next(from, action)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if action == ActionApprove {
			ok, err := s.mou.WithTx(tx).HasActiveMou(ctx, ad.EmployerID, now)
			if err != nil {
				return err
			}
			if !ok {
				return mouerrors.MouRequired(ad.EmployerID.String())
			}
		}

		u := StatusUpdate{To: to, At: now, By: actor.ID, Notes: notes}
		n, err := repo.UpdateStatus(ctx, adID, from, u)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.InvalidTransition("ad", string(from), string(action))
		}
		applyStatus(ad, u)

		_, err = s.journal.WithTx(tx).Append(ctx, workflow.Transition{
			Action:     rules[action].logAs,
			EntityID:   ad.ID,
			EntityName: ad.Title,
			EmployerID: ad.EmployerID.String(),
			From:       string(from),
			To:         string(to),
			Actor:      actor,
			Notes:      notes,
			Metadata:   map[string]any{"reference_no": ad.ReferenceNo},
		})
		if err != nil {
			log.Error("journal append failed, rolling back", zap.Error(err))
			return err
		}
		updated = ad
		return nil
	})
	obs.RecordTransition("ad", string(action), err)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			log.Warn("ad transition rejected", zap.Error(err))
		} else {
			log.Error("ad transition failed", zap.Error(err))
		}
		return AdResponse{}, err
	}

	log.Info("ad transitioned", zap.String("status", string(updated.Status)))
	return mapAd(updated), nil
}

func (s *service) BulkApprove(ctx context.Context, actor contextutil.Actor, ids []string) (bulk.Result, error) {
	if !actor.IsBranchAdmin() {
		return bulk.Result{}, apperror.ErrForbidden
	}
	return s.bulk.Run(ctx, "ad.approve", ids, func(ctx context.Context, id string) error {
		_, err := s.Approve(ctx, actor, id)
		return err
	})
}

func (s *service) BulkReject(ctx context.Context, actor contextutil.Actor, ids []string, notes string) (bulk.Result, error) {
	if !actor.IsBranchAdmin() {
		return bulk.Result{}, apperror.ErrForbidden
	}
	if err := bulk.RequireNotes(notes); err != nil {
		return bulk.Result{}, err
	}
	return s.bulk.Run(ctx, "ad.reject", ids, func(ctx context.Context, id string) error {
		_, err := s.Reject(ctx, actor, id, notes)
		return err
	})
}

func (s *service) ownedCompany(ctx context.Context, employerID uuid.UUID, companyID string) (uuid.UUID, error) {
	cid, err := uuid.Parse(strings.TrimSpace(companyID))
	if err != nil {
		return uuid.Nil, aderrors.ErrInvalidCompanyID
	}
	company, err := s.companies.FindCompany(ctx, cid)
	if err != nil {
		return uuid.Nil, err
	}
	if company.EmployerID != employerID {
		return uuid.Nil, aderrors.ErrCompanyNotOwned
	}
	return cid, nil
}

func applyStatus(ad *Ad, u StatusUpdate) {
	ad.Status = u.To
	at, by := u.At, u.By
	switch u.To {
	case StatusPendingApproval:
		ad.SubmittedAt = &at
	case StatusApproved:
		ad.ApprovedAt, ad.ApprovedBy = &at, &by
	case StatusRejected:
		ad.RejectedAt, ad.RejectedBy = &at, &by
		ad.RejectionNotes = u.Notes
	case StatusArchived:
		ad.ArchivedAt, ad.ArchivedBy = &at, &by
	}
	ad.UpdatedAt = at
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapAd(ad *Ad) AdResponse {
	return AdResponse{
		ID:             ad.ID.String(),
		ReferenceNo:    ad.ReferenceNo,
		EmployerID:     ad.EmployerID.String(),
		CompanyID:      ad.CompanyID.String(),
		Title:          ad.Title,
		Description:    ad.Description,
		Category:       ad.Category,
		CategoryFields: ad.CategoryFields.Data(),
		Status:         string(ad.Status),
		SubmittedAt:    formatTime(ad.SubmittedAt),
		ApprovedAt:     formatTime(ad.ApprovedAt),
		ApprovedBy:     ad.ApprovedBy,
		RejectedAt:     formatTime(ad.RejectedAt),
		RejectedBy:     ad.RejectedBy,
		RejectionNotes: ad.RejectionNotes,
		ArchivedAt:     formatTime(ad.ArchivedAt),
		ArchivedBy:     ad.ArchivedBy,
		CreatedAt:      ad.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      ad.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
