package lock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"go.uber.org/zap"
)

var ErrLockNotObtained = apperror.New(
	apperror.CodeConflict,
	"resource is being modified by another request, retry shortly",
	http.StatusConflict,
)

type ReleaseFunc func()

// Locker grants exclusive access to a set of keys. Acquire blocks until every
// key is held, the context ends or the implementation gives up.
type Locker interface {
	Acquire(ctx context.Context, keys ...string) (ReleaseFunc, error)
}

// normalizeKeys sorts and dedupes so that two callers locking overlapping
// sets always take keys in the same order.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok || k == "" {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	opts   *redislock.Options
	logger *zap.Logger
}

func NewRedisLocker(client redislock.RedisClient, ttl time.Duration, logger ...*zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	l := zap.L().Named("lock.redis")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lock.redis")
	}
	return &RedisLocker{
		client: redislock.New(client),
		ttl:    ttl,
		opts: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
		},
		logger: l,
	}
}

func (r *RedisLocker) Acquire(ctx context.Context, keys ...string) (ReleaseFunc, error) {
	keys = normalizeKeys(keys)
	held := make([]*redislock.Lock, 0, len(keys))

	release := func() {
		// Release pakai context baru agar lock tetap dilepas walau request dibatalkan
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Release(relCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				r.logger.Warn("release lock failed", zap.String("key", held[i].Key()), zap.Error(err))
			}
		}
	}

	for _, key := range keys {
		lk, err := r.client.Obtain(ctx, "lock:"+key, r.ttl, r.opts)
		if err != nil {
			release()
			if errors.Is(err, redislock.ErrNotObtained) {
				r.logger.Warn("could not obtain lock", zap.String("key", key))
				return nil, ErrLockNotObtained.Withf("key %s", key)
			}
			return nil, err
		}
		held = append(held, lk)
	}

	stop := make(chan struct{})
	go keepAlive(stop, r.ttl/2, func(ctx context.Context) error {
		for _, lk := range held {
			if err := lk.Refresh(ctx, r.ttl, nil); err != nil {
				return fmt.Errorf("refresh %s: %w", lk.Key(), err)
			}
		}
		return nil
	}, func(err error) {
		r.logger.Error("refresh lock lease failed", zap.Error(err))
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			release()
		})
	}, nil
}

// keepAlive extends held leases every interval until stop is closed, so a
// batch that outlives the TTL keeps its keys. It gives up once a lease is
// no longer ours.
func keepAlive(stop <-chan struct{}, every time.Duration, refresh func(context.Context) error, onErr func(error)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), every)
			err := refresh(ctx)
			cancel()
			if err == nil {
				continue
			}
			onErr(err)
			if errors.Is(err, redislock.ErrNotObtained) {
				return
			}
		}
	}
}

// LocalLocker is an in-process keyed mutex for single-instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

func (l *LocalLocker) Acquire(ctx context.Context, keys ...string) (ReleaseFunc, error) {
	keys = normalizeKeys(keys)
	held := make([]string, 0, len(keys))

	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.unlock(held[i])
		}
	}

	for _, key := range keys {
		s := l.ref(key)
		select {
		case s.ch <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			l.unref(key)
			release()
			return nil, ErrLockNotObtained.Withf("key %s: %v", key, ctx.Err())
		}
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *LocalLocker) ref(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		return
	}
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *LocalLocker) unlock(key string) {
	l.mu.Lock()
	s, ok := l.slots[key]
	l.mu.Unlock()
	if !ok {
		return
	}
	<-s.ch
	l.unref(key)
}
