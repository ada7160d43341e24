package traffic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	vegeta "github.com/tsenart/vegeta/v12/lib"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
)

const (
	defaultMinDelay = 500 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
	defaultWorkers  = 3
	defaultTimeout  = 10 * time.Second

	attackName = "aiops-demo-traffic"
)

// Endpoint is one entry in the traffic mix: a path and its relative weight.
type Endpoint struct {
	Path   string
	Weight float64
}

// DefaultMix mirrors the demo traffic profile: process-heavy, with the
// slow and failure endpoints sprinkled in.
func DefaultMix() []Endpoint {
	return []Endpoint{
		{Path: "/api/process", Weight: 3},
		{Path: "/api/slow", Weight: 1},
		{Path: "/api/database", Weight: 1},
		{Path: "/api/permission", Weight: 1},
		{Path: "/api/network", Weight: 1},
	}
}

// Options configures a traffic run.
type Options struct {
	// BaseURL is the root of the target service, e.g. http://localhost:8080.
	BaseURL string
	// Token, when set, is sent as a bearer Authorization header.
	Token string
	// Mix is the weighted endpoint mix. Empty means DefaultMix.
	Mix []Endpoint
	// MinDelay and MaxDelay bound the uniform gap between hits.
	MinDelay time.Duration
	MaxDelay time.Duration
	// Duration bounds the run. Zero runs until the context is cancelled.
	Duration time.Duration
	// Workers is the number of attack workers.
	Workers int
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// Logger receives progress output. Nil means slog.Default().
	Logger *slog.Logger
}

// Summary aggregates one traffic run: the vegeta metrics plus a per-path
// hit count and an error tally that counts 4xx/5xx answers as errors the
// way the demo dashboards do.
type Summary struct {
	vegeta.Metrics
	ByPath     map[string]uint64
	ErrorCount uint64
}

// ErrorRate returns the fraction of requests that failed or answered with
// a 4xx/5xx status
func (s *Summary) ErrorRate() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.Requests)
}

// Generator drives randomized traffic against a running service.
type Generator struct {
	opts     Options
	mix      *outcome.Set
	sel      *outcome.Selector
	pacer    *UniformPacer
	attacker *vegeta.Attacker
	log      *slog.Logger
}

// NewGenerator validates the options and prepares the attacker
func NewGenerator(opts Options) (*Generator, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", opts.BaseURL)
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	if opts.MinDelay <= 0 {
		opts.MinDelay = defaultMinDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	entries := opts.Mix
	if len(entries) == 0 {
		entries = DefaultMix()
	}
	outcomes := make([]outcome.Outcome, len(entries))
	for i, ep := range entries {
		if !strings.HasPrefix(ep.Path, "/") {
			return nil, fmt.Errorf("mix path %q must start with a slash", ep.Path)
		}
		outcomes[i] = outcome.Outcome{
			Name:       ep.Path,
			Weight:     ep.Weight,
			StatusCode: http.StatusOK,
		}
	}
	mix, err := outcome.NewSet("traffic-mix", outcomes...)
	if err != nil {
		return nil, fmt.Errorf("invalid traffic mix: %w", err)
	}

	pacer, err := NewUniformPacer(opts.MinDelay, opts.MaxDelay)
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:  opts,
		mix:   mix,
		sel:   outcome.NewSelector(nil),
		pacer: pacer,
		attacker: vegeta.NewAttacker(
			vegeta.Timeout(opts.Timeout),
			vegeta.Workers(uint64(opts.Workers)),
			vegeta.KeepAlive(true),
		),
		log: opts.Logger,
	}, nil
}

// Targeter returns the vegeta targeter. Each call draws a path from the
// weighted mix and stamps a fresh request id so individual requests can be
// traced through the target's logs.
func (g *Generator) Targeter() vegeta.Targeter {
	return func(tgt *vegeta.Target) error {
		if tgt == nil {
			return vegeta.ErrNilTarget
		}

		picked := g.sel.Pick(g.mix)

		header := make(http.Header)
		header.Set("X-Request-ID", uuid.NewString())
		if g.opts.Token != "" {
			header.Set("Authorization", "Bearer "+g.opts.Token)
		}

		tgt.Method = http.MethodGet
		tgt.URL = g.opts.BaseURL + picked.Name
		tgt.Header = header
		return nil
	}
}

// Run attacks the target until the configured duration elapses or the
// context is cancelled, then returns the aggregated summary
func (g *Generator) Run(ctx context.Context) *Summary {
	summary := &Summary{ByPath: make(map[string]uint64)}

	g.log.Info("starting traffic run",
		"target", g.opts.BaseURL,
		"workers", g.opts.Workers,
		"min_delay", g.opts.MinDelay,
		"max_delay", g.opts.MaxDelay,
	)

	results := g.attacker.Attack(g.Targeter(), g.pacer, g.opts.Duration, attackName)
	for {
		select {
		case <-ctx.Done():
			g.log.Info("stopping traffic run", "reason", ctx.Err())
			g.attacker.Stop()
			for res := range results {
				g.observe(summary, res)
			}
			summary.Close()
			return summary
		case res, ok := <-results:
			if !ok {
				summary.Close()
				return summary
			}
			g.observe(summary, res)
		}
	}
}

// observe folds one result into the summary and logs one line per request
func (g *Generator) observe(s *Summary, res *vegeta.Result) {
	s.Add(res)

	path := res.URL
	if parsed, err := url.Parse(res.URL); err == nil {
		path = parsed.Path
	}
	s.ByPath[path]++

	switch {
	case res.Error != "":
		s.ErrorCount++
		g.log.Error("request failed", "path", path, "error", res.Error)
	case res.Code >= 400:
		s.ErrorCount++
		g.log.Warn("request", "path", path, "code", res.Code, "latency", res.Latency)
	default:
		g.log.Info("request", "path", path, "code", res.Code, "latency", res.Latency)
	}
}
