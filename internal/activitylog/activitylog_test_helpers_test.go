package activitylog_test

import (
	"context"

	"go-jobmarket/internal/activitylog"

	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn func(ctx context.Context, e *activitylog.Entry) error
	listFn   func(ctx context.Context, f activitylog.ListFilter) ([]activitylog.Entry, int64, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) activitylog.Repository {
	return f
}

func (f *fakeRepo) Create(ctx context.Context, e *activitylog.Entry) error {
	return f.createFn(ctx, e)
}

func (f *fakeRepo) List(ctx context.Context, filter activitylog.ListFilter) ([]activitylog.Entry, int64, error) {
	return f.listFn(ctx, filter)
}
