// Package bulk fans a single-item workflow operation out over many ids.
// Each item runs in its own transaction; one failing item never stops the others.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 4
	DefaultMaxItems    = 200

	CodeCancelled = "CANCELLED"
)

// ItemFunc performs the single-item operation for id.
type ItemFunc func(ctx context.Context, id string) error

type Coordinator struct {
	concurrency int
	maxItems    int
	logger      *zap.Logger
}

func NewCoordinator(concurrency, maxItems int, logger ...*zap.Logger) *Coordinator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if maxItems < 1 {
		maxItems = DefaultMaxItems
	}
	l := zap.L().Named("bulk.coordinator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bulk.coordinator")
	}
	return &Coordinator{concurrency: concurrency, maxItems: maxItems, logger: l}
}

// RequireNotes rejects a bulk reject call before any item is touched.
func RequireNotes(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return apperror.RequiredField("notes")
	}
	return nil
}

// Dedupe trims ids and drops blanks and repeats, keeping first-seen order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Run applies fn to every distinct id with at most c.concurrency items in flight.
// Only whole-call validation problems are returned as an error.
func (c *Coordinator) Run(ctx context.Context, action string, ids []string, fn ItemFunc) (Result, error) {
	log := contextutil.GetLogger(ctx, c.logger)

	unique := Dedupe(ids)
	if len(unique) == 0 {
		return Result{}, apperror.Validation("ids", "must not be empty")
	}
	if len(unique) > c.maxItems {
		return Result{}, apperror.Validation("ids", fmt.Sprintf("must contain at most %d items", c.maxItems))
	}

	log.Debug("bulk run started", zap.String("action", action), zap.Int("items", len(unique)))

	errs := make([]error, len(unique))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, id := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Succeeded: []string{}, Failed: []Failure{}}
	for i, id := range unique {
		if errs[i] == nil {
			res.Succeeded = append(res.Succeeded, id)
			continue
		}
		res.Failed = append(res.Failed, toFailure(id, errs[i]))
	}

	obs.RecordBulk(action, len(res.Succeeded), len(res.Failed))
	log.Info("bulk run finished",
		zap.String("action", action),
		zap.Int("succeeded", len(res.Succeeded)),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

func toFailure(id string, err error) Failure {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Failure{ID: id, Code: CodeCancelled, Reason: err.Error()}
	}
	httpErr := apperror.ToHTTP(err)
	return Failure{ID: id, Code: httpErr.Code, Reason: httpErr.Message}
}
