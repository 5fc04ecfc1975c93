package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/nexport-go/internal/config"
	"github.com/raphaelgruber/nexport-go/internal/export"
	"github.com/raphaelgruber/nexport-go/internal/models"
	"github.com/raphaelgruber/nexport-go/internal/notion"
)

var (
	exportFormat       string
	exportView         string
	exportFlatten      bool
	exportRecursive    bool
	exportIncludeFiles bool
	exportWorkers      int
	exportOutput       string
)

var exportCmd = &cobra.Command{
	Use:   "export <pages.yaml>",
	Short: "Export the pages listed in a YAML file",
	Long: `Export Notion pages to a timestamped output directory.

The pages file maps page names to Notion page IDs (32 hex characters, with
or without dashes):

  Home:    0fba34c9e6e145f9a4a2d7e69f4c9b2e
  Roadmap: 7c11a94a-23f5-4c94-8f2d-9be301f8c0d4

One export job is submitted per page. Jobs run concurrently on a bounded
worker pool; a page that fails is logged and skipped without affecting the
others. Downloaded archives are unpacked in place after all pages finish.

Examples:
  nexport export pages.yaml
  nexport export pages.yaml --format pdf
  nexport export pages.yaml --workers 2 --output ./backups
  nexport export pages.yaml --view all --include-files`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(models.ExportMarkdown), "export format: markdown, html or pdf")
	exportCmd.Flags().StringVar(&exportView, "view", string(models.ViewCurrent), "view scope for database pages: currentView or all")
	exportCmd.Flags().BoolVar(&exportFlatten, "flatten", true, "flatten the exported file tree")
	exportCmd.Flags().BoolVarP(&exportRecursive, "recursive", "r", true, "export subpages recursively")
	exportCmd.Flags().BoolVar(&exportIncludeFiles, "include-files", false, "include attached files in the export")
	exportCmd.Flags().IntVarP(&exportWorkers, "workers", "w", 0, "concurrent export jobs (default: number of CPUs)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "base directory for the export (default: current directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if cfg.TokenV2 == "" || cfg.FileToken == "" {
		return fmt.Errorf("missing credentials: set NOTION_TOKEN_V2 and NOTION_FILE_TOKEN")
	}

	pages, err := config.LoadPages(args[0])
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Println("No pages to export.")
		return nil
	}

	opts := models.ExportOptions{
		Format:       models.ExportType(exportFormat),
		View:         models.ViewExportType(exportView),
		Flatten:      exportFlatten,
		Recursive:    exportRecursive,
		IncludeFiles: exportIncludeFiles,
	}
	if !opts.Format.Valid() {
		return fmt.Errorf("unknown export format: %s", exportFormat)
	}
	if !opts.View.Valid() {
		return fmt.Errorf("unknown view scope: %s", exportView)
	}

	workers := exportWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	baseDir := exportOutput
	if baseDir == "" {
		baseDir = cfg.ExportDir
	}

	client := notion.New(notion.Credentials{
		TokenV2:   cfg.TokenV2,
		FileToken: cfg.FileToken,
	})

	runCfg := export.Config{
		Pages:           pages,
		Options:         opts,
		BaseDir:         baseDir,
		Workers:         workers,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.MaxPollAttempts,
	}

	ctx := cmd.Context()

	// Interactive progress bar only on a terminal; plain logs otherwise.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runExportWithProgress(ctx, client, runCfg); err != nil {
			return err
		}
	} else {
		runCfg.OnProgress = func(ev export.ProgressEvent) {
			slog.Info("page exported",
				"page", ev.Result.Name,
				"pages_exported", ev.Result.PagesExported,
				"progress", fmt.Sprintf("%d/%d", ev.Done, ev.Total))
		}
		exporter, err := export.New(client, runCfg)
		if err != nil {
			return err
		}
		if err := exporter.Process(ctx); err != nil {
			return err
		}
		fmt.Printf("Export written to %s\n", exporter.Dir())
	}

	return nil
}
