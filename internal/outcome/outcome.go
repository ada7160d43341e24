package outcome

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
)

// LogLine is a canned log message emitted when its outcome is selected
type LogLine struct {
	Level   logger.LogLevel
	Message string
}

// Outcome is one possible result an endpoint may produce: a status code,
// a canned body and the log lines that go with it. A nil body means the
// simulator builds the body per request.
type Outcome struct {
	Name       string
	Weight     float64
	StatusCode int
	Body       map[string]interface{}
	Logs       []LogLine
}

// Set is the weighted collection of outcomes for one endpoint. Weights
// need not sum to 1; they are normalized at selection time.
type Set struct {
	Endpoint string
	Outcomes []Outcome
}

// NewSet creates an outcome set and validates it. Sets are built once at
// process start, so a validation error here aborts startup.
func NewSet(endpoint string, outcomes ...Outcome) (*Set, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("outcome set must have an endpoint name")
	}

	if len(outcomes) == 0 {
		return nil, fmt.Errorf("outcome set for '%s' must contain at least one outcome", endpoint)
	}

	for i, o := range outcomes {
		if o.Name == "" {
			return nil, fmt.Errorf("outcome %d in set '%s' must have a name", i, endpoint)
		}

		if o.Weight <= 0 {
			return nil, fmt.Errorf("outcome '%s' in set '%s' must have a positive weight, got %g", o.Name, endpoint, o.Weight)
		}

		if o.StatusCode < 100 || o.StatusCode > 599 {
			return nil, fmt.Errorf("outcome '%s' in set '%s' has invalid status code %d", o.Name, endpoint, o.StatusCode)
		}
	}

	return &Set{Endpoint: endpoint, Outcomes: outcomes}, nil
}

// Selector draws weighted-random outcomes. It is safe for concurrent use
// by multiple request goroutines.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector backed by the given random source. A nil
// source selects a time-seeded one; tests pass a fixed-seed source to get
// deterministic draws.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Selector{rng: rand.New(src)}
}

// Pick returns exactly one outcome from the set. The probability of
// returning a given outcome is its weight divided by the sum of all
// weights in the set. Calling Pick with an empty set is a programming
// error and panics; sets are validated at startup via NewSet.
func (s *Selector) Pick(set *Set) Outcome {
	if set == nil || len(set.Outcomes) == 0 {
		panic("outcome: Pick called with an empty set")
	}

	var total float64
	for _, o := range set.Outcomes {
		total += o.Weight
	}

	s.mu.Lock()
	r := s.rng.Float64() * total
	s.mu.Unlock()

	var cumulative float64
	for _, o := range set.Outcomes {
		cumulative += o.Weight
		if r < cumulative {
			return o
		}
	}

	// Floating point accumulation can leave r just past the last boundary.
	return set.Outcomes[len(set.Outcomes)-1]
}

// UniformDuration returns a duration drawn uniformly from [min, max].
func (s *Selector) UniformDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}

	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	return min + time.Duration(f*float64(max-min))
}
