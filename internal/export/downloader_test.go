package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeriveFilename(t *testing.T) {
	token := strings.Repeat("a", 100)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "token prefix stripped",
			url:  "https://file.notion.so/exports/" + token + "Export-0fba34c9.zip",
			want: "Export-0fba34c9.zip",
		},
		{
			name: "segment exactly 100 chars",
			url:  "https://file.notion.so/exports/" + token,
			want: "",
		},
		{
			name: "short segment",
			url:  "https://file.notion.so/exports/abc.zip",
			want: "",
		},
		{
			name: "no path separator",
			url:  strings.Repeat("b", 100) + "tail.zip",
			want: "tail.zip",
		},
		{
			name: "140 char segment keeps last 40",
			url:  "https://x/" + strings.Repeat("c", 140),
			want: strings.Repeat("c", 40),
		},
		{
			name: "empty url",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveFilename(tt.url); got != tt.want {
				t.Errorf("deriveFilename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

type fakeFetcher struct {
	body  string
	err   error
	calls int
}

func (f *fakeFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestSave_WritesFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{body: "archive-bytes"}
	d := NewDownloader(fetcher, dir)

	url := "https://file.notion.so/exports/" + strings.Repeat("a", 100) + "Export-abc.zip"
	name, err := d.Save(context.Background(), url)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if name != "Export-abc.zip" {
		t.Errorf("Save() name = %q, want %q", name, "Export-abc.zip")
	}

	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(content) != "archive-bytes" {
		t.Errorf("saved content = %q, want %q", content, "archive-bytes")
	}
}

func TestSave_EmptyFilenameFails(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(&fakeFetcher{body: "x"}, dir)

	// Short segment derives an empty name, which cannot be written.
	_, err := d.Save(context.Background(), "https://file.notion.so/exports/short.zip")
	if err == nil {
		t.Fatal("Save() expected error for empty derived filename")
	}
}

func TestSave_FetchError(t *testing.T) {
	dir := t.TempDir()
	fetchErr := errors.New("connection reset")
	d := NewDownloader(&fakeFetcher{err: fetchErr}, dir)

	_, err := d.Save(context.Background(), "https://x/"+strings.Repeat("a", 120))
	if !errors.Is(err, fetchErr) {
		t.Errorf("Save() error = %v, want %v", err, fetchErr)
	}
}
