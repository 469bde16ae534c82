package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/logger"
)

const (
	// DefaultPollInterval is the fixed delay between operation polls.
	DefaultPollInterval = 5 * time.Second

	// DefaultMaxWait is the polling budget for create operations.
	DefaultMaxWait = 300 * time.Second
)

// ProgressFunc is called after each poll that found the operation still running.
type ProgressFunc func(operation string, attempt int)

// OperationPoller waits for long-running operations and resolves the name of
// the resource they created.
type OperationPoller struct {
	ops      driven.OperationGetter
	clock    driven.Clock
	interval time.Duration
	progress ProgressFunc
}

// NewOperationPoller creates a poller with the default 5s interval.
// A nil clock means the wall clock.
func NewOperationPoller(ops driven.OperationGetter, clock driven.Clock) *OperationPoller {
	if clock == nil {
		clock = SystemClock{}
	}
	return &OperationPoller{
		ops:      ops,
		clock:    clock,
		interval: DefaultPollInterval,
	}
}

// SetProgress installs a callback invoked while the operation is still running.
func (p *OperationPoller) SetProgress(fn ProgressFunc) {
	p.progress = fn
}

// Await polls operation until it completes or maxWait elapses, then returns
// the name of the created resource.
//
// The name comes from response.name when present. Otherwise it is rebuilt from
// the operation name's project, location and collection segments plus kind and
// fallbackID. Errors:
//   - domain.ErrOperationFailed: the operation finished with an error field.
//   - domain.ErrUnresolvedName: finished, but no name could be derived.
//   - domain.ErrOperationTimeout: maxWait elapsed first.
//   - domain.ErrTransport: a poll failed; polling is not retried.
//
// A non-positive maxWait means DefaultMaxWait.
func (p *OperationPoller) Await(
	ctx context.Context,
	operation string,
	fallbackID string,
	kind domain.ResourceKind,
	maxWait time.Duration,
) (string, error) {
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	if operation == "" {
		return "", fmt.Errorf("%w: empty operation name", domain.ErrUnresolvedName)
	}

	deadline := p.clock.Now().Add(maxWait)
	for attempt := 1; p.clock.Now().Before(deadline); attempt++ {
		op, err := p.ops.GetOperation(ctx, operation)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if errors.Is(err, domain.ErrTransport) {
				return "", fmt.Errorf("poll operation %s: %w", operation, err)
			}
			return "", fmt.Errorf("%w: poll operation %s: %w", domain.ErrTransport, operation, err)
		}

		if op.Done {
			return resolveCompleted(op, operation, fallbackID, kind)
		}

		logger.Debug("operation %s still running (attempt %d)", operation, attempt)
		if p.progress != nil {
			p.progress(operation, attempt)
		}

		if err := p.clock.Sleep(ctx, p.interval); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %s did not complete within %s", domain.ErrOperationTimeout, operation, maxWait)
}

// resolveCompleted maps a finished operation to a resource name.
func resolveCompleted(op *domain.Operation, operation, fallbackID string, kind domain.ResourceKind) (string, error) {
	if op.Failed() {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrOperationFailed, operation, op.Error)
	}

	if name, ok := op.ResponseName(); ok {
		return name, nil
	}

	logger.Debug("operation %s has no response name, reconstructing", operation)
	return ReconstructName(operation, kind, fallbackID)
}

// ReconstructName derives a resource name from an operation name of the form
// projects/{p}/locations/{l}/collections/{c}/operations/{id}.
// Positions are fixed: project at 1, location at 3 and collection at 5, with
// "collections" required at 4.
func ReconstructName(operation string, kind domain.ResourceKind, id string) (string, error) {
	parts := strings.Split(operation, "/")
	if len(parts) < 6 || parts[4] != domain.SegmentCollections {
		return "", fmt.Errorf("%w: unexpected operation name %q", domain.ErrUnresolvedName, operation)
	}
	return domain.ResourceName(parts[1], parts[3], parts[5], kind, id), nil
}
