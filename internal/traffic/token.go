// Package traffic drives randomized load against a running demo service.
// It produces the request mix the dashboards expect: mostly successful
// process calls with slow requests and failures mixed in, paced unevenly
// enough to look hand-driven.
package traffic

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const tokenCommandTimeout = 10 * time.Second

// TokenSource obtains a bearer token by running an external command and
// reading its stdout. Deployments behind an identity-aware proxy need
// every request authenticated; shelling out to the platform CLI keeps the
// generator free of cloud SDK credentials plumbing.
type TokenSource struct {
	command string
	args    []string
	timeout time.Duration
}

// NewTokenSource creates a token source that runs the given command
func NewTokenSource(command string, args ...string) *TokenSource {
	return &TokenSource{
		command: command,
		args:    args,
		timeout: tokenCommandTimeout,
	}
}

// Token runs the command and returns its trimmed stdout
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.command, t.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("token command timed out after %s", t.timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("token command failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("token command failed: %w", err)
	}

	token := strings.TrimSpace(stdout.String())
	if token == "" {
		return "", fmt.Errorf("token command produced no output")
	}

	return token, nil
}
