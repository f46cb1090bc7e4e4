package persona

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayConfig shapes the humanizing pause before a reply is returned.
type DelayConfig struct {
	Enabled        bool
	CharsPerSecond float64
	Min            time.Duration
	Max            time.Duration
	Jitter         time.Duration
}

// DefaultDelayConfig mimics a person typing at 50 characters per second
// perceived speed, pausing between 2 and 8 seconds with half a second of
// jitter.
func DefaultDelayConfig() DelayConfig {
	return DelayConfig{
		Enabled:        true,
		CharsPerSecond: 50,
		Min:            2 * time.Second,
		Max:            8 * time.Second,
		Jitter:         500 * time.Millisecond,
	}
}

// TypingDelay computes the pause for a reply of the given length: length
// divided by typing speed, clamped to [Min, Max], plus uniform jitter in
// [-Jitter, +Jitter]. Returns 0 when disabled.
func TypingDelay(cfg DelayConfig, replyLen int) time.Duration {
	if !cfg.Enabled {
		return 0
	}
	cps := cfg.CharsPerSecond
	if cps <= 0 {
		cps = 50
	}

	d := time.Duration(float64(replyLen) / cps * float64(time.Second))
	if d < cfg.Min {
		d = cfg.Min
	}
	if cfg.Max > 0 && d > cfg.Max {
		d = cfg.Max
	}

	if cfg.Jitter > 0 {
		d += rand.N(2*cfg.Jitter) - cfg.Jitter
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Sleep waits out the delay, returning early when the context ends.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
