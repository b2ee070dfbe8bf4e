package employer

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusActive          Status = "ACTIVE"
	StatusBlocked         Status = "BLOCKED"
	StatusRejected        Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingApproval, StatusActive, StatusBlocked, StatusRejected:
		return true
	}
	return false
}

// Employer is never hard-deleted. Status changes only through Next.
type Employer struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"type:varchar(150);not null"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employers_email"`
	Status      Status     `gorm:"type:varchar(20);not null;index:idx_employers_status"`
	StatusNotes string     `gorm:"type:text;not null;default:''"`
	ApprovedBy  *string    `gorm:"type:varchar(64)"`
	ApprovedAt  *time.Time `gorm:"type:timestamptz"`
	Version     int        `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"not null;default:now()"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()"`
	Companies   []Company  `gorm:"foreignKey:EmployerID"`
}

func (Employer) TableName() string {
	return "employers"
}
