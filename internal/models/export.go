// Package models defines data structures for the nexport pipeline.
package models

// ExportType selects the output format of an export job.
type ExportType string

const (
	ExportMarkdown ExportType = "markdown"
	ExportHTML     ExportType = "html"
	ExportPDF      ExportType = "pdf"
)

// Valid reports whether t is a known export type.
func (t ExportType) Valid() bool {
	switch t {
	case ExportMarkdown, ExportHTML, ExportPDF:
		return true
	}
	return false
}

// ViewExportType controls how collection (database) pages are exported.
type ViewExportType string

const (
	ViewCurrent ViewExportType = "currentView"
	ViewAll     ViewExportType = "all"
)

// Valid reports whether v is a known view export type.
func (v ViewExportType) Valid() bool {
	switch v {
	case ViewCurrent, ViewAll:
		return true
	}
	return false
}

// ExportOptions configures an export job. The options are fixed before
// submission and shared read-only across all concurrent page tasks.
type ExportOptions struct {
	Format       ExportType
	View         ViewExportType
	Flatten      bool
	Recursive    bool
	IncludeFiles bool
}

// DefaultExportOptions returns the standard options: flattened recursive
// Markdown export of the current view, without attached files.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:    ExportMarkdown,
		View:      ViewCurrent,
		Flatten:   true,
		Recursive: true,
	}
}

// FormatOptions derives the format-specific payload fields from the options.
// PDF exports carry a page size; excluding files adds a content filter.
func (o ExportOptions) FormatOptions() map[string]any {
	opts := make(map[string]any)
	switch o.Format {
	case ExportPDF:
		opts["pdfFormat"] = "Letter"
	case ExportMarkdown, ExportHTML:
	}
	if !o.IncludeFiles {
		opts["includeContents"] = "no_files"
	}
	return opts
}
