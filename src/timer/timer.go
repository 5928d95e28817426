package timer

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Wait blocks for d on clk. It returns ctx.Err() if ctx ends first.
func Wait(ctx context.Context, clk clockwork.Clock, d time.Duration) error {
	t := clk.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ticks waits n consecutive periods of d and calls onTick after each one.
// Every period starts a fresh timer, so there is exactly one pending timer
// per caller at any time.
func Ticks(ctx context.Context, clk clockwork.Clock, d time.Duration, n int, onTick func(tick int)) error {
	for i := 1; i <= n; i++ {
		if err := Wait(ctx, clk, d); err != nil {
			return err
		}
		onTick(i)
	}
	return nil
}
