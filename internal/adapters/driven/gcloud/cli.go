// Package gcloud runs the Google Cloud SDK command-line tool for tokens and
// defaults that the user has already configured there.
package gcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/logger"
)

// Ensure CLI implements the interface.
var _ driven.ConfigSource = (*CLI)(nil)

// DefaultTimeout bounds every gcloud invocation.
const DefaultTimeout = 10 * time.Second

// Runner executes an external command and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. A non-zero exit is reported with stderr attached.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// CLI wraps the gcloud binary.
type CLI struct {
	runner  Runner
	binary  string
	timeout time.Duration
}

// New creates a CLI. A nil runner means ExecRunner.
func New(runner Runner) *CLI {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &CLI{runner: runner, binary: "gcloud", timeout: DefaultTimeout}
}

func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("running %s %s", c.binary, strings.Join(args, " "))
	out, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s %s timed out after %s", c.binary, strings.Join(args, " "), c.timeout)
		}
		return "", err
	}
	return out, nil
}

// AccessToken mints a user access token.
// Fails with domain.ErrAuth if gcloud is missing, fails or prints nothing.
func (c *CLI) AccessToken(ctx context.Context) (string, error) {
	token, err := c.run(ctx, "auth", "print-access-token")
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: gcloud printed an empty access token", domain.ErrAuth)
	}
	return token, nil
}

// Account returns the active account or an empty string.
func (c *CLI) Account(ctx context.Context) string {
	return c.configValue(ctx, "account")
}

// Project returns the configured default project or an empty string.
func (c *CLI) Project(ctx context.Context) string {
	return c.configValue(ctx, "project")
}

// Lookup implements driven.ConfigSource. Only the project key is served.
func (c *CLI) Lookup(ctx context.Context, key string) (string, bool) {
	if key != driven.ConfigKeyProject {
		return "", false
	}
	project := c.Project(ctx)
	return project, project != ""
}

func (c *CLI) configValue(ctx context.Context, property string) string {
	out, err := c.run(ctx, "config", "get-value", property)
	if err != nil {
		logger.Debug("gcloud config get-value %s: %v", property, err)
		return ""
	}
	if out == "(unset)" {
		return ""
	}
	return out
}
