package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"igc2csv/internal/track"
)

type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// passGap is the wait before a looped track restarts when it has no usable
// first gap of its own.
const passGap = time.Second

// Play replays rows with the gaps between their timestamps.
//
// The callback is invoked once per row. Gaps that go backwards (clock
// resets, unsorted fixes) are clamped to zero. When looping, each new pass
// starts after the track's first gap, or passGap if that gap is not positive.
//
// speedMultiplier: 1.0 = real time, 2.0 = 2x speed (half waits), 0.5 = half speed.
func Play(ctx context.Context, rows []track.Row, speedMultiplier float64, loop bool, sleeper Sleeper, cb func(track.Row) error) error {
	if speedMultiplier <= 0 {
		return fmt.Errorf("speedMultiplier must be > 0")
	}
	if sleeper == nil {
		sleeper = realSleeper{}
	}
	if cb == nil {
		return errors.New("callback is nil")
	}
	if len(rows) == 0 {
		return errors.New("no rows")
	}

	wait := func(d time.Duration) error {
		d = time.Duration(float64(d) / speedMultiplier)
		if d <= 0 {
			return nil
		}
		return sleeper.Sleep(ctx, d)
	}

	restart := passGap
	if len(rows) > 1 {
		if g := rows[1].Time.Sub(rows[0].Time); g > 0 {
			restart = g
		}
	}

	for pass := 0; ; pass++ {
		for i, r := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			var gap time.Duration
			switch {
			case i > 0:
				gap = max(r.Time.Sub(rows[i-1].Time), 0)
			case pass > 0:
				gap = restart
			}
			if err := wait(gap); err != nil {
				return err
			}

			if err := cb(r); err != nil {
				return err
			}
		}

		if !loop {
			return nil
		}
	}
}
