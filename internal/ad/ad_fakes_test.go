package ad_test

import (
	"context"
	"sync"
	"time"

	"go-jobmarket/internal/ad"
	aderrors "go-jobmarket/internal/ad/errors"
	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/shared/counter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memRepo keeps ads in memory and honours the status guards of the real repository.
// concurrent, when set, runs before the guard check of UpdateStatus to
// simulate another writer committing first.
type memRepo struct {
	mu         sync.Mutex
	ads        map[uuid.UUID]*ad.Ad
	concurrent func(a *ad.Ad)
}

func newMemRepo(ads ...*ad.Ad) *memRepo {
	r := &memRepo{ads: map[uuid.UUID]*ad.Ad{}}
	for _, a := range ads {
		r.ads[a.ID] = a
	}
	return r
}

func (r *memRepo) get(id uuid.UUID) ad.Ad {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.ads[id]
}

func (r *memRepo) WithTx(tx *gorm.DB) ad.Repository { return r }

func (r *memRepo) Create(ctx context.Context, a *ad.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.ads[a.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id uuid.UUID) (*ad.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.ads[id]
	if !ok {
		return nil, aderrors.ErrAdNotFound(id.String())
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ad.Ad, error) {
	return r.FindByID(ctx, id)
}

func (r *memRepo) List(ctx context.Context, f ad.ListFilter) ([]ad.Ad, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ad.Ad
	for _, a := range r.ads {
		if f.EmployerID != "" && a.EmployerID.String() != f.EmployerID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) UpdateDraft(ctx context.Context, a *ad.Ad) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.ads[a.ID]
	if !ok || cur.Status != ad.StatusDraft {
		return 0, nil
	}
	cp := *a
	r.ads[a.ID] = &cp
	return 1, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from ad.Status, u ad.StatusUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.ads[id]
	if ok && r.concurrent != nil {
		r.concurrent(cur)
	}
	if !ok || cur.Status != from {
		return 0, nil
	}
	cur.Status = u.To
	if u.To == ad.StatusRejected {
		cur.RejectionNotes = u.Notes
	}
	return 1, nil
}

// fakeChecker answers HasActiveMou from a fixed set of employers.
type fakeChecker struct {
	mu    sync.Mutex
	valid map[uuid.UUID]bool
	calls int
}

func (c *fakeChecker) WithTx(tx *gorm.DB) mou.Checker { return c }

func (c *fakeChecker) HasActiveMou(ctx context.Context, employerID uuid.UUID, now time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.valid[employerID], nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) WithTx(tx *gorm.DB) counter.Repository { return f }

func (f *fakeCounter) GetNextValue(ctx context.Context, scopeID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}
