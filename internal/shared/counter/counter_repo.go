package counter

import (
	"context"

	"gorm.io/gorm"
)

const (
	TypeMOUVersion  = "mou_version"
	TypeAdReference = "ad_reference"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetNextValue(ctx context.Context, scopeID string, counterType string) (int64, error)
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

// GetNextValue increments the per-scope counter atomically and returns the new value.
func (r *repository) GetNextValue(ctx context.Context, scopeID string, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO scope_counters (scope_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope_id, counter_type) DO UPDATE
		SET last_value = scope_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scopeID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
