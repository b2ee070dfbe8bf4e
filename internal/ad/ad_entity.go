package ad

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
	StatusArchived        Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected, StatusArchived:
		return true
	}
	return false
}

type Ad struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenceNo    string                             `gorm:"type:varchar(30);not null;uniqueIndex:uq_ads_reference_no"`
	EmployerID     uuid.UUID                          `gorm:"type:uuid;not null;index:idx_ads_employer_status"`
	CompanyID      uuid.UUID                          `gorm:"type:uuid;not null;index:idx_ads_company"`
	Title          string                             `gorm:"type:varchar(200);not null"`
	Description    string                             `gorm:"type:text;not null"`
	Category       string                             `gorm:"type:varchar(80);not null"`
	CategoryFields datatypes.JSONType[CategoryFields] `gorm:"type:jsonb;not null"`
	Status         Status                             `gorm:"type:varchar(20);not null;index:idx_ads_employer_status"`
	SubmittedAt    *time.Time                         `gorm:"type:timestamptz"`
	ApprovedAt     *time.Time                         `gorm:"type:timestamptz"`
	ApprovedBy     *string                            `gorm:"type:varchar(64)"`
	RejectedAt     *time.Time                         `gorm:"type:timestamptz"`
	RejectedBy     *string                            `gorm:"type:varchar(64)"`
	RejectionNotes string                             `gorm:"type:text;not null;default:''"`
	ArchivedAt     *time.Time                         `gorm:"type:timestamptz"`
	ArchivedBy     *string                            `gorm:"type:varchar(64)"`
	CreatedAt      time.Time                          `gorm:"not null;default:now()"`
	UpdatedAt      time.Time                          `gorm:"not null;default:now()"`
}

func (Ad) TableName() string {
	return "ads"
}
