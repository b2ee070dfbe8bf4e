package tenant

import (
	"go-jobmarket/internal/shared/contextutil"

	"gorm.io/gorm"
)

func Scope(employerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employer_id = ?", employerID)
	}
}

// ForActor restricts employer actors to their own rows. Branch admins see everything.
func ForActor(actor contextutil.Actor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsBranchAdmin() {
			return db
		}
		return db.Where("employer_id = ?", actor.EmployerID)
	}
}
