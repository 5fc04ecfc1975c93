package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher retrieves an export artifact by URL.
type Fetcher interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Downloader saves export artifacts into the run's output directory.
// Remote-assigned artifact names are unique, so concurrent saves never
// collide on a path.
type Downloader struct {
	fetcher Fetcher
	dir     string
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(fetcher Fetcher, dir string) *Downloader {
	return &Downloader{fetcher: fetcher, dir: dir}
}

// Save downloads the artifact at url into the output directory and returns
// the local filename.
func (d *Downloader) Save(ctx context.Context, url string) (string, error) {
	body, err := d.fetcher.Download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: %w", err)
	}
	defer body.Close()

	name := deriveFilename(url)
	f, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return name, nil
}

// deriveFilename extracts the local filename from an artifact URL: the last
// path segment with its first 100 characters removed. Notion prefixes the
// segment with a fixed-width signed token; segments of 100 characters or
// fewer therefore yield an empty name. The offset must match the remote
// naming convention exactly.
func deriveFilename(url string) string {
	segment := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		segment = url[i+1:]
	}
	if len(segment) <= 100 {
		return ""
	}
	return segment[100:]
}
