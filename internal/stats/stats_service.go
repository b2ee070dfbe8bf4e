package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-jobmarket/internal/ad"
	"go-jobmarket/internal/employer"
	"go-jobmarket/internal/mou"
	"go-jobmarket/internal/obs"
	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CacheKey        = "dashboard:stats"
	DefaultCacheTTL = time.Minute
)

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, actor contextutil.Actor) (Snapshot, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo    Repository
	checker mou.Checker
	rdb     redis.Cmdable
	ttl     time.Duration
	sf      *singleflight.Group
	now     func() time.Time
	logger  *zap.Logger
}

// NewService builds the stats service. rdb may be nil, in which case every
// call hits the database.
func NewService(repo Repository, checker mou.Checker, rdb redis.Cmdable, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:    repo,
		checker: checker,
		rdb:     rdb,
		ttl:     ttl,
		sf:      &singleflight.Group{},
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Get(ctx context.Context, actor contextutil.Actor) (Snapshot, error) {
	if !actor.IsBranchAdmin() {
		return Snapshot{}, apperror.ErrForbidden
	}
	log := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, CacheKey).Result()
		switch {
		case err == nil:
			var snap Snapshot
			if jsonErr := json.Unmarshal([]byte(cached), &snap); jsonErr == nil {
				obs.RecordStatsCache("hit")
				return snap, nil
			}
			log.Warn("discarding undecodable stats cache entry")
		case errors.Is(err, redis.Nil):
			obs.RecordStatsCache("miss")
		default:
			obs.RecordStatsCache("error")
			log.Warn("stats cache read failed, computing from database", zap.Error(err))
		}
	}

	// other waiters share this result; the first caller cancelling must not fail them
	sctx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(CacheKey, func() (interface{}, error) {
		snap, err := s.compute(sctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			data, _ := json.Marshal(snap)
			if err := s.rdb.Set(sctx, CacheKey, data, s.ttl).Err(); err != nil {
				log.Warn("stats cache write failed", zap.Error(err))
			}
		}
		return snap, nil
	})
	if err != nil {
		log.Error("compute dashboard stats failed", zap.Error(err))
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Invalidate drops the cached snapshot. Called by the lifecycle consumer.
func (s *service) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.Del(ctx, CacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate stats cache", zap.String("key", CacheKey), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) compute(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Ads: map[string]int64{
			string(ad.StatusDraft):           0,
			string(ad.StatusPendingApproval): 0,
			string(ad.StatusApproved):        0,
			string(ad.StatusRejected):        0,
			string(ad.StatusArchived):        0,
		},
		Employers: map[string]int64{
			string(employer.StatusPendingApproval): 0,
			string(employer.StatusActive):          0,
			string(employer.StatusBlocked):         0,
			string(employer.StatusRejected):        0,
		},
	}

	adCounts, err := s.repo.CountAdsByStatus(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	for _, c := range adCounts {
		snap.Ads[c.Status] = c.Total
	}

	employerCounts, err := s.repo.CountEmployersByStatus(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	for _, c := range employerCounts {
		snap.Employers[c.Status] = c.Total
	}

	pending, err := s.repo.PendingAdsByEmployer(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	now := s.now().UTC()
	for _, p := range pending {
		ok, err := s.checker.HasActiveMou(ctx, p.EmployerID, now)
		if err != nil {
			return Snapshot{}, err
		}
		if !ok {
			snap.PendingAdsWithoutMou += p.Total
		}
	}
	return snap, nil
}
