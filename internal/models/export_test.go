package models

import (
	"reflect"
	"testing"
)

func TestFormatOptions(t *testing.T) {
	tests := []struct {
		name string
		opts ExportOptions
		want map[string]any
	}{
		{
			name: "markdown without files",
			opts: ExportOptions{Format: ExportMarkdown},
			want: map[string]any{"includeContents": "no_files"},
		},
		{
			name: "pdf gets a page size",
			opts: ExportOptions{Format: ExportPDF},
			want: map[string]any{"pdfFormat": "Letter", "includeContents": "no_files"},
		},
		{
			name: "html with files has no extra options",
			opts: ExportOptions{Format: ExportHTML, IncludeFiles: true},
			want: map[string]any{},
		},
		{
			name: "pdf with files",
			opts: ExportOptions{Format: ExportPDF, IncludeFiles: true},
			want: map[string]any{"pdfFormat": "Letter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.FormatOptions()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FormatOptions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportTypeValid(t *testing.T) {
	for _, valid := range []ExportType{ExportMarkdown, ExportHTML, ExportPDF} {
		if !valid.Valid() {
			t.Errorf("%q should be valid", valid)
		}
	}
	if ExportType("docx").Valid() {
		t.Error("unknown export type should be invalid")
	}
}

func TestViewExportTypeValid(t *testing.T) {
	for _, valid := range []ViewExportType{ViewCurrent, ViewAll} {
		if !valid.Valid() {
			t.Errorf("%q should be valid", valid)
		}
	}
	if ViewExportType("everything").Valid() {
		t.Error("unknown view type should be invalid")
	}
}

func TestTaskStatusTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   bool
	}{
		{"pending", TaskStatus{State: TaskPending}, false},
		{"in progress", TaskStatus{State: TaskInProgress}, false},
		{"failure", TaskStatus{State: TaskFailure}, true},
		{"success with url", TaskStatus{State: TaskSuccess, ExportURL: "https://x/y"}, true},
		{"in progress with url", TaskStatus{State: TaskInProgress, ExportURL: "https://x/y"}, true},
		{"success without url", TaskStatus{State: TaskSuccess}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}
