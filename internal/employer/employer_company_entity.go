package employer

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationType string

const (
	RegistrationTypeNPWP RegistrationType = "NPWP"
	RegistrationTypeNIB  RegistrationType = "NIB"
	RegistrationTypeSIUP RegistrationType = "SIUP"
	RegistrationTypeEIN  RegistrationType = "EIN"
	RegistrationTypeUEN  RegistrationType = "UEN"
)

func (r RegistrationType) Valid() bool {
	switch r {
	case RegistrationTypeNPWP, RegistrationTypeNIB, RegistrationTypeSIUP, RegistrationTypeEIN, RegistrationTypeUEN:
		return true
	}
	return false
}

// Company is a hiring entity owned by an employer; ads are posted under one.
type Company struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployerID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_companies_employer"`
	Name               string            `gorm:"type:varchar(150);not null"`
	Industry           string            `gorm:"type:varchar(100);not null;default:''"`
	RegistrationType   *RegistrationType `gorm:"type:varchar(10)"`
	RegistrationNumber string            `gorm:"type:varchar(100);not null;default:''"`
	CreatedAt          time.Time         `gorm:"not null;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
