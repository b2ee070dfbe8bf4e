package mou

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FeeType string

const (
	FeeFixed      FeeType = "FIXED"
	FeePercentage FeeType = "PERCENTAGE"
)

func (f FeeType) Valid() bool {
	return f == FeeFixed || f == FeePercentage
}

// MOU is a fee agreement between an employer and the branch admin who issued it.
// At most one row per employer has IsActive set (uq_mou_employer_active).
type MOU struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployerID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_mous_employer"`
	BranchAdminID string          `gorm:"type:varchar(64);not null"`
	FeeType       FeeType         `gorm:"type:varchar(20);not null"`
	FeeValue      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SignedAt      time.Time       `gorm:"not null"`
	ValidUntil    *time.Time
	IsActive      bool    `gorm:"not null;default:true"`
	Version       int     `gorm:"not null"`
	DocumentKey   *string `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (MOU) TableName() string {
	return "mous"
}

// IsValidAt reports whether the MOU is active and not expired at now.
func (m MOU) IsValidAt(now time.Time) bool {
	return m.IsActive && (m.ValidUntil == nil || m.ValidUntil.After(now))
}
