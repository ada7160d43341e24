package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/traffic"
)

var opts struct {
	url          string
	duration     time.Duration
	minDelay     time.Duration
	maxDelay     time.Duration
	workers      int
	timeout      time.Duration
	tokenCommand string
	noAuth       bool
	verbose      bool
}

var rootCmd = &cobra.Command{
	Use:   "trafficgen [SERVICE_URL]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Generate randomized traffic against an aiops-demo-service instance",
	Long: `trafficgen drives a weighted mix of requests against a running
aiops-demo-service: mostly /api/process calls, with slow requests and
failing endpoints mixed in, spaced by a random delay so the resulting
logs and metrics look like organic traffic.

For services behind an identity-aware proxy (Cloud Run, IAP) it obtains
a bearer token by running an external command, gcloud by default.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.url, "url", "http://localhost:8080", "Base URL of the target service")
	flags.DurationVar(&opts.duration, "duration", 5*time.Minute, "How long to run (0 runs until interrupted)")
	flags.DurationVar(&opts.minDelay, "min-delay", 500*time.Millisecond, "Minimum gap between requests")
	flags.DurationVar(&opts.maxDelay, "max-delay", 2*time.Second, "Maximum gap between requests")
	flags.IntVar(&opts.workers, "workers", 3, "Number of attack workers")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	flags.StringVar(&opts.tokenCommand, "token-command", "gcloud auth print-identity-token", "Command that prints a bearer token on stdout")
	flags.BoolVar(&opts.noAuth, "no-auth", false, "Skip token acquisition and send unauthenticated requests")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		opts.url = args[0]
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var token string
	if !opts.noAuth {
		parts := strings.Fields(opts.tokenCommand)
		if len(parts) == 0 {
			return fmt.Errorf("token command is empty; use --no-auth for unauthenticated targets")
		}
		source := traffic.NewTokenSource(parts[0], parts[1:]...)
		tok, err := source.Token(ctx)
		if err != nil {
			log.Error("failed to obtain token; use --no-auth for unauthenticated targets", "error", err)
			return err
		}
		token = tok
		log.Info("obtained bearer token", "command", parts[0])
	}

	checker := traffic.NewChecker(5 * time.Second)
	check, err := checker.Check(ctx, opts.url, token)
	if err != nil {
		return fmt.Errorf("target unreachable: %w", err)
	}
	if check.Healthy {
		log.Info("target healthy", "url", opts.url)
	} else {
		log.Warn("target reachable but not healthy, continuing anyway",
			"status", check.StatusCode, "body", check.Body)
	}

	gen, err := traffic.NewGenerator(traffic.Options{
		BaseURL:  opts.url,
		Token:    token,
		MinDelay: opts.minDelay,
		MaxDelay: opts.maxDelay,
		Duration: opts.duration,
		Workers:  opts.workers,
		Timeout:  opts.timeout,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	printSummary(log, gen.Run(ctx))
	return nil
}

func printSummary(log *slog.Logger, s *traffic.Summary) {
	log.Info("traffic run complete",
		"requests", s.Requests,
		"errors", s.ErrorCount,
		"error_rate", fmt.Sprintf("%.1f%%", s.ErrorRate()*100),
		"elapsed", (s.Duration + s.Wait).Round(time.Second),
		"mean_latency", s.Latencies.Mean.Round(time.Millisecond),
		"p95_latency", s.Latencies.P95.Round(time.Millisecond),
	)

	codes := make([]string, 0, len(s.StatusCodes))
	for code := range s.StatusCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		log.Info("status breakdown", "code", code, "count", s.StatusCodes[code])
	}

	paths := make([]string, 0, len(s.ByPath))
	for path := range s.ByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		log.Info("path breakdown", "path", path, "count", s.ByPath[path])
	}

	for _, errMsg := range s.Errors {
		log.Warn("observed transport error", "error", errMsg)
	}
}
