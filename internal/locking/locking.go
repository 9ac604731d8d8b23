// Package locking provides the short-lived per-key locks taken around a
// ledger sync. Locks are advisory: callers proceed without one when it cannot
// be obtained, and the ledger's unique source index stays the real guard.
package locking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the lock is held elsewhere and the wait ran out.
var ErrNotObtained = errors.New("lock not obtained")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out locks by key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// redisLocker backs locks with redislock so that several API replicas serialize on the same key.
type redisLocker struct {
	client *redislock.Client
	retry  redislock.RetryStrategy
}

// NewRedisLocker wraps an existing redis client.
func NewRedisLocker(rdb *redis.Client) Locker {
	return &redisLocker{
		client: redislock.New(rdb),
		retry:  redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	}
}

// ConnectRedis dials redis and pings it once.
func ConnectRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (l *redisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lock, err := l.client.Obtain(ctx, "lock:"+key, ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return lock, nil
}

// localLocker serializes holders of the same key inside one process.
type localLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewLocalLocker returns an in-process Locker. The ttl argument is ignored.
func NewLocalLocker() Locker {
	return &localLocker{held: make(map[string]chan struct{})}
}

func (l *localLocker) Obtain(ctx context.Context, key string, _ time.Duration) (Lock, error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()
			return &localLock{owner: l, key: key, done: done}, nil
		}
		l.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ErrNotObtained
		}
	}
}

type localLock struct {
	owner *localLocker
	key   string
	done  chan struct{}
	once  sync.Once
}

func (l *localLock) Release(context.Context) error {
	l.once.Do(func() {
		l.owner.mu.Lock()
		if l.owner.held[l.key] == l.done {
			delete(l.owner.held, l.key)
		}
		l.owner.mu.Unlock()
		close(l.done)
	})
	return nil
}
