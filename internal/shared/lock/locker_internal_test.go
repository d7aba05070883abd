package lock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
)

func TestKeepAlive_RefreshesUntilStopped(t *testing.T) {
	var calls int32
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		keepAlive(stop, 5*time.Millisecond, func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, func(err error) { t.Errorf("unexpected refresh error: %v", err) })
		close(done)
	}()

	time.Sleep(40 * time.Millisecond)
	close(stop)
	<-done

	n := atomic.LoadInt32(&calls)
	assert.GreaterOrEqual(t, n, int32(2))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, atomic.LoadInt32(&calls))
}

func TestKeepAlive_GivesUpWhenLeaseIsGone(t *testing.T) {
	var calls int32
	var reported error
	done := make(chan struct{})

	go func() {
		keepAlive(make(chan struct{}), 5*time.Millisecond, func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return redislock.ErrNotObtained
		}, func(err error) { reported = err })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keepAlive kept running after the lease was lost")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.ErrorIs(t, reported, redislock.ErrNotObtained)
}

func TestKeepAlive_TransientErrorKeepsGoing(t *testing.T) {
	var calls int32
	stop := make(chan struct{})
	done := make(chan struct{})
	var failures int32

	go func() {
		keepAlive(stop, 5*time.Millisecond, func(ctx context.Context) error {
			if atomic.AddInt32(&calls, 1) == 1 {
				return errors.New("i/o timeout")
			}
			return nil
		}, func(err error) { atomic.AddInt32(&failures, 1) })
		close(done)
	}()

	time.Sleep(40 * time.Millisecond)
	close(stop)
	<-done

	assert.Equal(t, int32(1), atomic.LoadInt32(&failures))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}
