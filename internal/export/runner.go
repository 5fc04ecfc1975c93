package export

import (
	"context"
	"log/slog"

	"github.com/raphaelgruber/nexport-go/internal/models"
)

// JobClient is the remote surface the runner needs to submit and poll jobs.
type JobClient interface {
	EnqueueExport(ctx context.Context, pageID string, opts models.ExportOptions) (string, error)
	TaskStatus(ctx context.Context, taskID string) (*models.TaskStatus, error)
}

// Saver persists a completed export artifact locally.
type Saver interface {
	Save(ctx context.Context, url string) (string, error)
}

// Awaiter waits for a task to reach a terminal status.
type Awaiter interface {
	Await(ctx context.Context, taskID string, fetch StatusFunc) (*models.TaskStatus, error)
}

// Runner executes the full export workflow for a single page: submit, poll
// to completion, download. It holds only read-only configuration and is safe
// to call concurrently for independent pages.
type Runner struct {
	client JobClient
	poller Awaiter
	saver  Saver
	opts   models.ExportOptions
}

// NewRunner creates a page task runner.
func NewRunner(client JobClient, poller Awaiter, saver Saver, opts models.ExportOptions) *Runner {
	return &Runner{client: client, poller: poller, saver: saver, opts: opts}
}

// RunPage exports one page and returns its terminal result. Failures are
// captured in the result, never propagated: one page failing must not affect
// other in-flight pages.
func (r *Runner) RunPage(ctx context.Context, page models.PageRequest) models.PageResult {
	taskID, err := r.client.EnqueueExport(ctx, page.ID, r.opts)
	if err != nil {
		slog.Error("export submission failed", "page", page.Name, "error", err)
		return models.PageResult{Name: page.Name, State: models.TaskFailure, Error: err.Error()}
	}

	status, err := r.poller.Await(ctx, taskID, r.client.TaskStatus)
	if err != nil {
		slog.Error("export polling failed", "page", page.Name, "task_id", taskID, "error", err)
		return models.PageResult{Name: page.Name, State: models.TaskFailure, Error: err.Error()}
	}

	if status.State == models.TaskFailure {
		slog.Error("export failed", "page", page.Name, "task_id", taskID, "error", status.Error)
		return models.PageResult{Name: page.Name, State: models.TaskFailure, Error: status.Error}
	}

	// Terminal without an artifact URL is tolerated partial success: log and
	// move on, do not retry.
	if status.ExportURL == "" {
		slog.Warn("no export URL for page", "page", page.Name, "task_id", taskID)
		return models.PageResult{
			Name:          page.Name,
			State:         status.State,
			PagesExported: status.PagesExported,
		}
	}

	file, err := r.saver.Save(ctx, status.ExportURL)
	if err != nil {
		slog.Error("saving export failed", "page", page.Name, "error", err)
		return models.PageResult{Name: page.Name, State: models.TaskFailure, Error: err.Error()}
	}

	return models.PageResult{
		Name:          page.Name,
		State:         status.State,
		ExportURL:     status.ExportURL,
		File:          file,
		PagesExported: status.PagesExported,
	}
}
