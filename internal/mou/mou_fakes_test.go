package mou_test

import (
	"bytes"
	"context"
	"io"

	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/counter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn               func(ctx context.Context, m *mou.MOU) error
	findByIDFn             func(ctx context.Context, id uuid.UUID) (*mou.MOU, error)
	findActiveForUpdateFn  func(ctx context.Context, employerID uuid.UUID) (*mou.MOU, error)
	listByEmployerFn       func(ctx context.Context, employerID uuid.UUID) ([]mou.MOU, error)
	listActiveByEmployerFn func(ctx context.Context, employerID uuid.UUID) ([]mou.MOU, error)
	sharedLocks            int
	deactivateFn           func(ctx context.Context, id uuid.UUID) (int64, error)
	setDocumentKeyFn       func(ctx context.Context, id uuid.UUID, key string) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) mou.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, m *mou.MOU) error {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*mou.MOU, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*mou.MOU, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindActiveForUpdate(ctx context.Context, employerID uuid.UUID) (*mou.MOU, error) {
	if f.findActiveForUpdateFn != nil {
		return f.findActiveForUpdateFn(ctx, employerID)
	}
	return nil, nil
}

func (f *fakeRepo) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]mou.MOU, error) {
	return f.listByEmployerFn(ctx, employerID)
}

func (f *fakeRepo) ListActiveByEmployer(ctx context.Context, employerID uuid.UUID) ([]mou.MOU, error) {
	return f.listActiveByEmployerFn(ctx, employerID)
}

func (f *fakeRepo) ListActiveByEmployerForShare(ctx context.Context, employerID uuid.UUID) ([]mou.MOU, error) {
	f.sharedLocks++
	return f.listActiveByEmployerFn(ctx, employerID)
}

func (f *fakeRepo) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.deactivateFn != nil {
		return f.deactivateFn(ctx, id)
	}
	return 1, nil
}

func (f *fakeRepo) SetDocumentKey(ctx context.Context, id uuid.UUID, key string) error {
	if f.setDocumentKeyFn != nil {
		return f.setDocumentKeyFn(ctx, id, key)
	}
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) WithTx(tx *gorm.DB) counter.Repository { return f }

func (f *fakeCounter) GetNextValue(ctx context.Context, scopeID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeDirectory struct {
	names map[uuid.UUID]string
}

func (f *fakeDirectory) NameByID(ctx context.Context, id uuid.UUID) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", apperror.NotFound("employer", id.String())
	}
	return name, nil
}

type fakeStore struct {
	keys map[string][]byte
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if f.keys == nil {
		f.keys = map[string][]byte{}
	}
	f.keys[key] = buf.Bytes()
	return nil
}
