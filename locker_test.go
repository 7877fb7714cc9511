package bankx_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/bankx"
)

func TestLocker(t *testing.T) {
	ctx := context.Background()
	a, b := snowflake.ID(100), snowflake.ID(200)

	t.Run("times out with contention while held", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		lk := bankx.NewLocker(20 * time.Millisecond)

		unlock, err := lk.Lock(ctx, b)
		reqrd.Nil(err)
		_, err = lk.Lock(ctx, b, a)
		as.ErrorAs(err, &bankx.ErrContention{})
		as.True(bankx.IsRetryable(err))

		// a is taken first and must be released when b times out
		unlockA, err := lk.Lock(ctx, a)
		as.Nil(err)
		unlockA()

		unlock()
		unlockAB, err := lk.Lock(ctx, a, b)
		as.Nil(err)
		unlockAB()
	})

	t.Run("returns the caller's context error, not contention", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		lk := bankx.NewLocker(time.Second)

		unlock, err := lk.Lock(ctx, a)
		reqrd.Nil(err)
		defer unlock()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = lk.Lock(cctx, a)
		as.ErrorIs(err, context.Canceled)
		as.False(bankx.IsRetryable(err))

		dctx, dcancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer dcancel()
		_, err = lk.Lock(dctx, a)
		as.ErrorIs(err, context.DeadlineExceeded)
		as.False(bankx.IsRetryable(err))
	})

	t.Run("collapses duplicate ids", func(tt *testing.T) {
		as := assert.New(tt)
		lk := bankx.NewLocker(20 * time.Millisecond)

		unlock, err := lk.Lock(ctx, a, a)
		as.Nil(err)
		unlock()
	})

	t.Run("does not deadlock on opposite orders", func(tt *testing.T) {
		as := assert.New(tt)
		lk := bankx.NewLocker(time.Second)

		var wg sync.WaitGroup
		errs := make(chan error, 200)
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock, err := lk.Lock(ctx, a, b)
				if err == nil {
					unlock()
				}
				errs <- err
			}()
			go func() {
				defer wg.Done()
				unlock, err := lk.Lock(ctx, b, a)
				if err == nil {
					unlock()
				}
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			as.Nil(err)
		}
	})
}
