package activitylog

import (
	"context"
	"strings"

	"go-jobmarket/internal/shared/dbscope"

	"gorm.io/gorm"
)

// Repository only appends; entries are never updated or deleted.
//
//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, f ListFilter) ([]Entry, int64, error)
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Entry, int64, error) {
	q := r.db.WithContext(ctx).Model(&Entry{}).Scopes(filterScope(f))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []Entry
	err := q.Order("created_at DESC").Order("id DESC").
		Scopes(dbscope.Paginate(f.Page, f.PageSize)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func filterScope(f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ActionType != "" {
			db = db.Where("action_type = ?", f.ActionType)
		}
		if f.EntityType != "" {
			db = db.Where("entity_type = ?", f.EntityType)
		}
		if f.EntityID != "" {
			db = db.Where("entity_id = ?", f.EntityID)
		}
		if f.PerformedBy != "" {
			db = db.Where("performed_by = ?", f.PerformedBy)
		}
		if f.From != nil {
			db = db.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			db = db.Where("created_at < ?", *f.To)
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			like := dbscope.Contains(s)
			db = db.Where("(entity_name ILIKE ? OR notes ILIKE ?)", like, like)
		}
		return db
	}
}
