package employer

import (
	"context"
	"errors"
	"strings"
	"time"

	employererrors "go-jobmarket/internal/employer/errors"
	"go-jobmarket/internal/shared/dbscope"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueEmailConstraint = "uq_employers_email"

// ListFilter narrows List. OnlyID restricts the listing to a single employer
// for employer-scoped callers.
type ListFilter struct {
	Status   Status
	Search   string
	OnlyID   *uuid.UUID
	Page     int
	PageSize int
}

// StatusUpdate is applied together with the guarded status change.
type StatusUpdate struct {
	To         Status
	Notes      string
	ApprovedBy *string
	ApprovedAt *time.Time
}

//go:generate mockgen -source=employer_repo.go -destination=mock/employer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employer, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Employer, error)
	NameByID(ctx context.Context, id uuid.UUID) (string, error)
	List(ctx context.Context, f ListFilter) ([]Employer, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from Status, u StatusUpdate) (int64, error)
	CreateCompany(ctx context.Context, c *Company) error
	FindCompany(ctx context.Context, id uuid.UUID) (*Company, error)
	ListCompanies(ctx context.Context, employerID uuid.UUID) ([]Company, error)
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

func (r *repository) Create(ctx context.Context, e *Employer) error {
	err := r.db.WithContext(ctx).Omit("Companies").Create(e).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmailConstraint {
		return employererrors.ErrEmailTaken
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employer, error) {
	var e Employer
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, mapEmployerNotFound(err, id)
	}
	return &e, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Employer, error) {
	var e Employer
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, mapEmployerNotFound(err, id)
	}
	return &e, nil
}

// NameByID also serves as an existence check for other modules.
func (r *repository) NameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&Employer{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", employererrors.ErrEmployerNotFound(id.String())
	}
	return names[0], nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Employer, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employer{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OnlyID != nil {
		q = q.Where("id = ?", *f.OnlyID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := dbscope.Contains(s)
		q = q.Where("(name ILIKE ? OR email ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employers []Employer
	err := q.Order("created_at DESC").
		Scopes(dbscope.Paginate(f.Page, f.PageSize)).
		Find(&employers).Error
	if err != nil {
		return nil, 0, err
	}
	return employers, total, nil
}

// UpdateStatus only writes when the row is still in from; callers treat zero
// affected rows as a lost race.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from Status, u StatusUpdate) (int64, error) {
	values := map[string]any{
		"status":       u.To,
		"status_notes": u.Notes,
		"version":      gorm.Expr("version + 1"),
		"updated_at":   gorm.Expr("NOW()"),
	}
	if u.ApprovedBy != nil {
		values["approved_by"] = *u.ApprovedBy
		values["approved_at"] = u.ApprovedAt
	}

	res := r.db.WithContext(ctx).
		Model(&Employer{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateCompany(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employererrors.ErrCompanyNotFound(id.String())
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCompanies(ctx context.Context, employerID uuid.UUID) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func mapEmployerNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employererrors.ErrEmployerNotFound(id.String())
	}
	return err
}
