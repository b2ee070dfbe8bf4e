package mou

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HasActiveMou is true iff exactly one of mous is active and unexpired at now.
func HasActiveMou(mous []MOU, now time.Time) bool {
	valid := 0
	for _, m := range mous {
		if m.IsValidAt(now) {
			valid++
		}
	}
	return valid == 1
}

// Checker evaluates HasActiveMou against the store. Results are never cached:
// an MOU can expire or be deactivated between submission and approval.
// A tx-bound checker share-locks the rows it reads.
type Checker interface {
	WithTx(tx *gorm.DB) Checker
	HasActiveMou(ctx context.Context, employerID uuid.UUID, now time.Time) (bool, error)
}

type checker struct {
	repo Repository
	lock bool
}

func NewChecker(repo Repository) Checker {
	return &checker{repo: repo}
}

func (c *checker) WithTx(tx *gorm.DB) Checker {
	return &checker{repo: c.repo.WithTx(tx), lock: true}
}

func (c *checker) HasActiveMou(ctx context.Context, employerID uuid.UUID, now time.Time) (bool, error) {
	list := c.repo.ListActiveByEmployer
	if c.lock {
		list = c.repo.ListActiveByEmployerForShare
	}
	mous, err := list(ctx, employerID)
	if err != nil {
		return false, err
	}
	return HasActiveMou(mous, now), nil
}
