package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/raphaelgruber/nexport-go/internal/models"
)

// Client is the full remote surface of one export run: job submission and
// polling plus artifact download.
type Client interface {
	JobClient
	Fetcher
}

// PageRunner runs the export workflow for a single page.
type PageRunner interface {
	RunPage(ctx context.Context, page models.PageRequest) models.PageResult
}

// ProgressEvent reports one successfully completed page to the progress
// display. Done counts exported pages so far; failed pages do not advance it.
type ProgressEvent struct {
	Result models.PageResult
	Done   int
	Total  int
}

// Config configures an export run. It is immutable once the Exporter is
// created and shared read-only across all workers.
type Config struct {
	Pages   []models.PageRequest
	Options models.ExportOptions

	// BaseDir is the optional parent of the run output directory.
	BaseDir string

	// Workers bounds concurrent in-flight page tasks.
	// Defaults to the available parallelism.
	Workers int

	// PollInterval is the wait between status checks (default 1s).
	PollInterval time.Duration

	// MaxPollAttempts bounds polling per task; 0 means wait indefinitely.
	MaxPollAttempts int

	// OnProgress, if set, is called for every non-failed page as results
	// arrive. Called from the collecting goroutine, never concurrently.
	OnProgress func(ProgressEvent)
}

// Exporter fans page export tasks out over a bounded worker pool, collects
// results in completion order, and unpacks the downloaded archives once
// every page has finished.
type Exporter struct {
	runner  PageRunner
	pages   []models.PageRequest
	workers int
	dir     string

	onProgress func(ProgressEvent)
}

// New creates an exporter and its run output directory, named
// export-<timestamp> under the optional base directory. The directory is
// created exactly once, before any task is dispatched; failure here is fatal
// to the run.
func New(client Client, cfg Config) (*Exporter, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runName := "export-" + time.Now().Format("2006-01-02-15-04-05")
	dir := filepath.Join(cfg.BaseDir, runName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	poller := NewPoller(cfg.PollInterval, cfg.MaxPollAttempts)
	runner := NewRunner(client, poller, NewDownloader(client, dir), cfg.Options)

	return &Exporter{
		runner:     runner,
		pages:      cfg.Pages,
		workers:    workers,
		dir:        dir,
		onProgress: cfg.OnProgress,
	}, nil
}

// Dir returns the run output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Process exports every configured page and unpacks the results. Page
// failures are logged and recorded per page; they never abort the run or
// other in-flight pages. The returned error covers only run-level problems
// (output directory scan, archive extraction).
func (e *Exporter) Process(ctx context.Context) error {
	total := len(e.pages)
	slog.Info("exporting pages", "count", total, "workers", e.workers)

	pageCh := make(chan models.PageRequest, total)
	resultCh := make(chan models.PageResult, total)

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range pageCh {
				resultCh <- e.runner.RunPage(ctx, page)
			}
		}()
	}

	for _, page := range e.pages {
		pageCh <- page
	}
	close(pageCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Results arrive in completion order; ordering between pages is not
	// guaranteed and not needed.
	done := 0
	failures := 0
	for result := range resultCh {
		if result.Failed() {
			failures++
			continue
		}
		done++
		if e.onProgress != nil {
			e.onProgress(ProgressEvent{Result: result, Done: done, Total: total})
		}
	}

	slog.Info("export finished", "pages", total, "exported", done, "failures", failures)

	return e.unpack()
}
