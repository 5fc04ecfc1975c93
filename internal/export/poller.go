// Package export drives Notion export jobs from submission to unpacked files.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raphaelgruber/nexport-go/internal/models"
)

// ErrPollLimit indicates a task did not reach a terminal state within the
// configured attempt bound.
var ErrPollLimit = errors.New("poll attempt limit reached")

// StatusFunc fetches the current status of a task. A nil status means the
// remote service has no record of the task yet.
type StatusFunc func(ctx context.Context, taskID string) (*models.TaskStatus, error)

// Poller waits for an export task to reach a terminal state, checking once
// per interval. A task that is not visible yet or not terminal is retried;
// a terminal status is returned immediately.
type Poller struct {
	interval    time.Duration
	maxAttempts int

	// sleep is replaceable in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller. maxAttempts bounds the number of waits between
// status checks; 0 means no bound.
func NewPoller(interval time.Duration, maxAttempts int) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

// Await polls fetch until the task reaches a terminal state. It never
// busy-spins: between checks it sleeps one interval, honoring ctx
// cancellation.
func (p *Poller) Await(ctx context.Context, taskID string, fetch StatusFunc) (*models.TaskStatus, error) {
	attempts := 0
	for {
		status, err := fetch(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if status != nil && status.Terminal() {
			return status, nil
		}

		attempts++
		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			return nil, fmt.Errorf("%w: task %s after %d attempts", ErrPollLimit, taskID, attempts)
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
