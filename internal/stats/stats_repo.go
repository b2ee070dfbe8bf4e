package stats

import (
	"context"

	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/employer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status string
	Total  int64
}

type EmployerCount struct {
	EmployerID uuid.UUID
	Total      int64
}

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	CountAdsByStatus(ctx context.Context) ([]StatusCount, error)
	CountEmployersByStatus(ctx context.Context) ([]StatusCount, error)
	PendingAdsByEmployer(ctx context.Context) ([]EmployerCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountAdsByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&ad.Ad{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountEmployersByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&employer.Employer{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) PendingAdsByEmployer(ctx context.Context) ([]EmployerCount, error) {
	var rows []EmployerCount
	err := r.db.WithContext(ctx).
		Model(&ad.Ad{}).
		Select("employer_id, COUNT(*) AS total").
		Where("status = ?", ad.StatusPendingApproval).
		Group("employer_id").
		Scan(&rows).Error
	return rows, err
}
