package traffic

import (
	"fmt"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
)

// UniformPacer spaces hits by a fresh uniform draw from [min, max]. The
// jitter makes the target's traffic look hand-driven instead of the flat
// line a constant-rate pacer produces.
type UniformPacer struct {
	min time.Duration
	max time.Duration
	sel *outcome.Selector
}

var _ vegeta.Pacer = (*UniformPacer)(nil)

// NewUniformPacer creates a pacer drawing delays from [min, max]
func NewUniformPacer(min, max time.Duration) (*UniformPacer, error) {
	if min <= 0 {
		return nil, fmt.Errorf("pacer min delay must be positive, got %s", min)
	}
	if max < min {
		return nil, fmt.Errorf("pacer max delay (%s) must not be below min delay (%s)", max, min)
	}
	return &UniformPacer{
		min: min,
		max: max,
		sel: outcome.NewSelector(nil),
	}, nil
}

// Pace returns the wait before the next hit. It never stops the attack;
// the run duration and context cancellation do that.
func (p *UniformPacer) Pace(elapsed time.Duration, hits uint64) (time.Duration, bool) {
	return p.sel.UniformDuration(p.min, p.max), false
}

// Rate reports the mean hit rate in hits per second
func (p *UniformPacer) Rate(elapsed time.Duration) float64 {
	mean := (p.min + p.max) / 2
	return float64(time.Second) / float64(mean)
}
