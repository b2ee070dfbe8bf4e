package ad

import (
	"context"
	"errors"
	"strings"
	"time"

	aderrors "go-jobmarket/internal/ad/errors"
	"go-jobmarket/internal/shared/dbscope"
	"go-jobmarket/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows List. EmployerID is mandatory for employer-scoped callers.
type ListFilter struct {
	Status     Status
	EmployerID string
	CompanyID  string
	Search     string
	Page       int
	PageSize   int
}

// StatusUpdate carries the audit columns written with a status change.
type StatusUpdate struct {
	To    Status
	At    time.Time
	By    string
	Notes string
}

//go:generate mockgen -source=ad_repo.go -destination=mock/ad_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ad *Ad) error
	FindByID(ctx context.Context, id uuid.UUID) (*Ad, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Ad, error)
	List(ctx context.Context, f ListFilter) ([]Ad, int64, error)
	UpdateDraft(ctx context.Context, ad *Ad) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from Status, u StatusUpdate) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ad *Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Ad, error) {
	var ad Ad
	if err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, id)
	}
	return &ad, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Ad, error) {
	var ad Ad
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ad, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return &ad, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Ad, int64, error) {
	q := r.db.WithContext(ctx).Model(&Ad{})
	if f.EmployerID != "" {
		q = q.Scopes(tenant.Scope(f.EmployerID))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := dbscope.Contains(s)
		q = q.Where("(title ILIKE ? OR reference_no ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ads []Ad
	err := q.Order("created_at DESC").Order("id DESC").
		Scopes(dbscope.Paginate(f.Page, f.PageSize)).
		Find(&ads).Error
	if err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// UpdateDraft rewrites the editable columns only while the ad is still a draft.
func (r *repository) UpdateDraft(ctx context.Context, ad *Ad) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Ad{}).
		Where("id = ? AND status = ?", ad.ID, StatusDraft).
		Updates(map[string]any{
			"company_id":      ad.CompanyID,
			"title":           ad.Title,
			"description":     ad.Description,
			"category":        ad.Category,
			"category_fields": ad.CategoryFields,
			"updated_at":      gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from Status, u StatusUpdate) (int64, error) {
	values := map[string]any{
		"status":     u.To,
		"updated_at": gorm.Expr("NOW()"),
	}
	switch u.To {
	case StatusPendingApproval:
		values["submitted_at"] = u.At
	case StatusApproved:
		values["approved_at"] = u.At
		values["approved_by"] = u.By
	case StatusRejected:
		values["rejected_at"] = u.At
		values["rejected_by"] = u.By
		values["rejection_notes"] = u.Notes
	case StatusArchived:
		values["archived_at"] = u.At
		values["archived_by"] = u.By
	}

	res := r.db.WithContext(ctx).
		Model(&Ad{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected, res.Error
}

func mapNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return aderrors.ErrAdNotFound(id.String())
	}
	return err
}
