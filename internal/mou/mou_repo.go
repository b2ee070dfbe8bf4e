package mou

import (
	"context"
	"errors"

	mouerrors "go-jobmarket/internal/mou/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueActiveConstraint = "uq_mou_employer_active"

//go:generate mockgen -source=mou_repo.go -destination=mock/mou_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, m *MOU) error
	FindByID(ctx context.Context, id uuid.UUID) (*MOU, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*MOU, error)
	FindActiveForUpdate(ctx context.Context, employerID uuid.UUID) (*MOU, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]MOU, error)
	ListActiveByEmployer(ctx context.Context, employerID uuid.UUID) ([]MOU, error)
	ListActiveByEmployerForShare(ctx context.Context, employerID uuid.UUID) ([]MOU, error)
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
	SetDocumentKey(ctx context.Context, id uuid.UUID, key string) error
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

func (r *repository) Create(ctx context.Context, m *MOU) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if isUniqueActiveViolation(err) {
		return mouerrors.ErrActiveMOUConflict
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*MOU, error) {
	var m MOU
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err, id)
	}
	return &m, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*MOU, error) {
	var m MOU
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return &m, nil
}

// FindActiveForUpdate returns nil, nil when the employer has no active MOU.
func (r *repository) FindActiveForUpdate(ctx context.Context, employerID uuid.UUID) (*MOU, error) {
	var mous []MOU
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Limit(1).
		Find(&mous).Error
	if err != nil {
		return nil, err
	}
	if len(mous) == 0 {
		return nil, nil
	}
	return &mous[0], nil
}

func (r *repository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]MOU, error) {
	var mous []MOU
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("version DESC").
		Find(&mous).Error
	return mous, err
}

func (r *repository) ListActiveByEmployer(ctx context.Context, employerID uuid.UUID) ([]MOU, error) {
	var mous []MOU
	err := r.db.WithContext(ctx).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Find(&mous).Error
	return mous, err
}

// ListActiveByEmployerForShare holds FOR SHARE on the active rows until the
// transaction ends, so a concurrent Deactivate or supersede waits for it.
func (r *repository) ListActiveByEmployerForShare(ctx context.Context, employerID uuid.UUID) ([]MOU, error) {
	var mous []MOU
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Find(&mous).Error
	return mous, err
}

// Deactivate clears is_active only if it is still set; the affected row count tells the caller.
func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&MOU{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": gorm.Expr("NOW()")})
	return res.RowsAffected, res.Error
}

func (r *repository) SetDocumentKey(ctx context.Context, id uuid.UUID, key string) error {
	return r.db.WithContext(ctx).
		Model(&MOU{}).
		Where("id = ?", id).
		Updates(map[string]any{"document_key": key, "updated_at": gorm.Expr("NOW()")}).Error
}

func mapNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mouerrors.ErrMOUNotFound(id.String())
	}
	return err
}

func isUniqueActiveViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == uniqueActiveConstraint
	}
	return false
}
