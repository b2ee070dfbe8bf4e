package mou_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobmarket/internal/mou"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasActiveMou(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name string
		mous []mou.MOU
		want bool
	}{
		{"no mou", nil, false},
		{"active open ended", []mou.MOU{{IsActive: true}}, true},
		{"active not yet expired", []mou.MOU{{IsActive: true, ValidUntil: &tomorrow}}, true},
		{"active but expired yesterday", []mou.MOU{{IsActive: true, ValidUntil: &yesterday}}, false},
		{"expiry equal to now is expired", []mou.MOU{{IsActive: true, ValidUntil: &now}}, false},
		{"inactive and unexpired", []mou.MOU{{IsActive: false, ValidUntil: &tomorrow}}, false},
		{"one expired one valid", []mou.MOU{{IsActive: true, ValidUntil: &yesterday}, {IsActive: true}}, true},
		{"two valid is not exactly one", []mou.MOU{{IsActive: true}, {IsActive: true, ValidUntil: &tomorrow}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mou.HasActiveMou(tt.mous, now))
		})
	}
}

func TestChecker_ExpiredMouBlocks(t *testing.T) {
	employerID := uuid.New()
	yesterday := time.Now().AddDate(0, 0, -1)

	repo := &fakeRepo{listActiveByEmployerFn: func(ctx context.Context, id uuid.UUID) ([]mou.MOU, error) {
		assert.Equal(t, employerID, id)
		return []mou.MOU{{EmployerID: id, IsActive: true, ValidUntil: &yesterday}}, nil
	}}

	ok, err := mou.NewChecker(repo).WithTx(nil).HasActiveMou(context.Background(), employerID, time.Now())

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_RepositoryError(t *testing.T) {
	repo := &fakeRepo{listActiveByEmployerFn: func(ctx context.Context, id uuid.UUID) ([]mou.MOU, error) {
		return nil, errors.New("db down")
	}}

	ok, err := mou.NewChecker(repo).HasActiveMou(context.Background(), uuid.New(), time.Now())

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestChecker_LocksOnlyInsideTx(t *testing.T) {
	repo := &fakeRepo{listActiveByEmployerFn: func(ctx context.Context, id uuid.UUID) ([]mou.MOU, error) {
		return []mou.MOU{{EmployerID: id, IsActive: true}}, nil
	}}
	c := mou.NewChecker(repo)

	ok, err := c.HasActiveMou(context.Background(), uuid.New(), time.Now())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, repo.sharedLocks)

	ok, err = c.WithTx(nil).HasActiveMou(context.Background(), uuid.New(), time.Now())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, repo.sharedLocks)
}
