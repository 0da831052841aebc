package generation

import (
	"context"
	"math/rand/v2"
	"time"
)

// Clock supplies wall-clock time and cancellable waits to the dispatcher.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is done, whichever comes first.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MaxSeed is the exclusive upper bound of generated seeds.
const MaxSeed = 1_000_000_000

// SeedSource draws the seed sent with a prediction.
type SeedSource func() int64

// RandomSeed draws uniformly from [1, MaxSeed). Zero is reserved for failed
// results.
func RandomSeed() int64 {
	return rand.Int64N(MaxSeed-1) + 1
}
