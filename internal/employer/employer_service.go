package employer

import (
	"context"
	"strings"
	"time"

	"go-jobmarket/internal/bulk"
	employererrors "go-jobmarket/internal/employer/errors"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employer_service.go -destination=mock/employer_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, actor contextutil.Actor, req RegisterEmployerRequest) (EmployerResponse, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error)
	List(ctx context.Context, actor contextutil.Actor, q ListQuery, page, pageSize int) ([]EmployerResponse, int64, error)

	Approve(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error)
	Reject(ctx context.Context, actor contextutil.Actor, id, notes string) (EmployerResponse, error)
	Block(ctx context.Context, actor contextutil.Actor, id, notes string) (EmployerResponse, error)
	Unblock(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error)
	BulkApprove(ctx context.Context, actor contextutil.Actor, ids []string) (bulk.Result, error)
	BulkReject(ctx context.Context, actor contextutil.Actor, ids []string, notes string) (bulk.Result, error)

	AddCompany(ctx context.Context, actor contextutil.Actor, employerID string, req CreateCompanyRequest) (CompanyResponse, error)
	ListCompanies(ctx context.Context, actor contextutil.Actor, employerID string) ([]CompanyResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	journal workflow.Journal
	bulk    *bulk.Coordinator
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, journal workflow.Journal, coordinator *bulk.Coordinator, logger ...*zap.Logger) Service {
	l := zap.L().Named("employer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employer.service")
	}
	if coordinator == nil {
		coordinator = bulk.NewCoordinator(bulk.DefaultConcurrency, bulk.DefaultMaxItems, l)
	}
	return &service{
		db:      db,
		repo:    repo,
		journal: journal,
		bulk:    coordinator,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Register(ctx context.Context, actor contextutil.Actor, req RegisterEmployerRequest) (EmployerResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("register employer requested", zap.String("email", req.Email), zap.String("actor_id", actor.ID))

	if actor.Role == contextutil.RoleEmployer && actor.EmployerID != "" {
		return EmployerResponse{}, employererrors.ErrAlreadyRegistered
	}

	e := &Employer{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Status:  StatusPendingApproval,
		Version: 1,
	}
	if e.Name == "" {
		return EmployerResponse{}, apperror.RequiredField("name")
	}

	if err := s.repo.Create(ctx, e); err != nil {
		log.Warn("register employer failed", zap.String("email", e.Email), zap.Error(err))
		return EmployerResponse{}, err
	}

	log.Info("employer registered", zap.String("employer_id", e.ID.String()))
	return mapEmployer(e), nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployerResponse{}, employererrors.ErrInvalidEmployerID
	}
	if !actor.CanActForEmployer(uid.String()) {
		return EmployerResponse{}, employererrors.ErrEmployerNotFound(id)
	}

	e, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return EmployerResponse{}, err
	}
	return mapEmployer(e), nil
}

func (s *service) List(ctx context.Context, actor contextutil.Actor, q ListQuery, page, pageSize int) ([]EmployerResponse, int64, error) {
	f := ListFilter{
		Status:   Status(strings.ToUpper(strings.TrimSpace(q.Status))),
		Search:   q.Search,
		Page:     page,
		PageSize: pageSize,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, employererrors.ErrInvalidStatus
	}
	if !actor.IsBranchAdmin() {
		own, err := uuid.Parse(actor.EmployerID)
		if err != nil {
			return []EmployerResponse{}, 0, nil
		}
		f.OnlyID = &own
	}

	employers, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployerResponse, len(employers))
	for i := range employers {
		resp[i] = mapEmployer(&employers[i])
	}
	return resp, total, nil
}

func (s *service) Approve(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error) {
	return s.transition(ctx, actor, id, ActionApprove, "")
}

func (s *service) Reject(ctx context.Context, actor contextutil.Actor, id, notes string) (EmployerResponse, error) {
	return s.transition(ctx, actor, id, ActionReject, notes)
}

func (s *service) Block(ctx context.Context, actor contextutil.Actor, id, notes string) (EmployerResponse, error) {
	return s.transition(ctx, actor, id, ActionBlock, notes)
}

func (s *service) Unblock(ctx context.Context, actor contextutil.Actor, id string) (EmployerResponse, error) {
	return s.transition(ctx, actor, id, ActionUnblock, "")
}

// transition locks the row, checks the table, writes the guarded update and
// journals it, all in one transaction.
func (s *service) transition(ctx context.Context, actor contextutil.Actor, id string, action Action, notes string) (EmployerResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("employer_id", id),
		zap.String("action", string(action)),
		zap.String("actor_id", actor.ID),
	)
	log.Debug("employer transition requested")

	if !actor.IsBranchAdmin() {
		return EmployerResponse{}, apperror.ErrForbidden
	}
	notes = strings.TrimSpace(notes)
	if NotesRequired(action) && notes == "" {
		return EmployerResponse{}, apperror.RequiredField("notes")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployerResponse{}, employererrors.ErrInvalidEmployerID
	}

	var updated *Employer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		e, err := repo.FindByIDForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		from := e.Status
		to, err := Next(from, action)
		if err != nil {
			return err
		}

		u := StatusUpdate{To: to, Notes: notes}
		if action == ActionApprove {
			now := s.now().UTC()
			u.ApprovedBy = &actor.ID
			u.ApprovedAt = &now
		}
		n, err := repo.UpdateStatus(ctx, uid, from, u)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.InvalidTransition("employer", string(from), string(action))
		}

		e.Status = to
		e.StatusNotes = u.Notes
		e.Version++
		if u.ApprovedBy != nil {
			e.ApprovedBy = u.ApprovedBy
			e.ApprovedAt = u.ApprovedAt
		}

		_, err = s.journal.WithTx(tx).Append(ctx, workflow.Transition{
			Action:     rules[action].logAs,
			EntityID:   e.ID,
			EntityName: e.Name,
			EmployerID: e.ID.String(),
			From:       string(from),
			To:         string(to),
			Actor:      actor,
			Notes:      notes,
		})
		if err != nil {
			log.Error("journal append failed, rolling back", zap.Error(err))
			return err
		}
		updated = e
		return nil
	})
	obs.RecordTransition("employer", string(action), err)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			log.Warn("employer transition rejected", zap.Error(err))
		} else {
			log.Error("employer transition failed", zap.Error(err))
		}
		return EmployerResponse{}, err
	}

	log.Info("employer transitioned", zap.String("status", string(updated.Status)))
	return mapEmployer(updated), nil
}

func (s *service) BulkApprove(ctx context.Context, actor contextutil.Actor, ids []string) (bulk.Result, error) {
	if !actor.IsBranchAdmin() {
		return bulk.Result{}, apperror.ErrForbidden
	}
	return s.bulk.Run(ctx, "employer.approve", ids, func(ctx context.Context, id string) error {
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
	return s.bulk.Run(ctx, "employer.reject", ids, func(ctx context.Context, id string) error {
		_, err := s.Reject(ctx, actor, id, notes)
		return err
	})
}

func (s *service) AddCompany(ctx context.Context, actor contextutil.Actor, employerID string, req CreateCompanyRequest) (CompanyResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	eid, err := uuid.Parse(employerID)
	if err != nil {
		return CompanyResponse{}, employererrors.ErrInvalidEmployerID
	}
	if !actor.CanActForEmployer(eid.String()) {
		return CompanyResponse{}, apperror.ErrForbidden
	}

	c := &Company{
		EmployerID:         eid,
		Name:               strings.TrimSpace(req.Name),
		Industry:           strings.TrimSpace(req.Industry),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
	}
	if c.Name == "" {
		return CompanyResponse{}, apperror.RequiredField("name")
	}
	if rt := strings.ToUpper(strings.TrimSpace(req.RegistrationType)); rt != "" {
		regType := RegistrationType(rt)
		if !regType.Valid() {
			return CompanyResponse{}, employererrors.ErrInvalidRegistrationType
		}
		if c.RegistrationNumber == "" {
			return CompanyResponse{}, apperror.RequiredField("registration_number")
		}
		c.RegistrationType = &regType
	}

	if _, err := s.repo.NameByID(ctx, eid); err != nil {
		return CompanyResponse{}, err
	}
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		log.Error("create company failed", zap.String("employer_id", employerID), zap.Error(err))
		return CompanyResponse{}, err
	}

	log.Info("company added", zap.String("employer_id", employerID), zap.String("company_id", c.ID.String()))
	return mapCompany(c), nil
}

func (s *service) ListCompanies(ctx context.Context, actor contextutil.Actor, employerID string) ([]CompanyResponse, error) {
	eid, err := uuid.Parse(employerID)
	if err != nil {
		return nil, employererrors.ErrInvalidEmployerID
	}
	if !actor.CanActForEmployer(eid.String()) {
		return nil, apperror.ErrForbidden
	}

	companies, err := s.repo.ListCompanies(ctx, eid)
	if err != nil {
		return nil, err
	}
	resp := make([]CompanyResponse, len(companies))
	for i := range companies {
		resp[i] = mapCompany(&companies[i])
	}
	return resp, nil
}

func mapEmployer(e *Employer) EmployerResponse {
	resp := EmployerResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Email:       e.Email,
		Status:      string(e.Status),
		StatusNotes: e.StatusNotes,
		ApprovedBy:  e.ApprovedBy,
		Version:     e.Version,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.ApprovedAt != nil {
		at := e.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

func mapCompany(c *Company) CompanyResponse {
	resp := CompanyResponse{
		ID:                 c.ID.String(),
		EmployerID:         c.EmployerID.String(),
		Name:               c.Name,
		Industry:           c.Industry,
		RegistrationNumber: c.RegistrationNumber,
		CreatedAt:          c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.RegistrationType != nil {
		resp.RegistrationType = string(*c.RegistrationType)
	}
	return resp
}
