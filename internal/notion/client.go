// Package notion implements the HTTP client for Notion's export API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/raphaelgruber/nexport-go/internal/models"
)

const defaultBaseURL = "https://www.notion.so/api/v3"

// Credentials holds the two Notion tokens. API calls (enqueue, status)
// authenticate with TokenV2; artifact downloads authenticate with FileToken.
type Credentials struct {
	TokenV2   string
	FileToken string
}

// Client issues export requests against the Notion API. It holds no state
// beyond its configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Notion API client.
// Timeout can be configured via NEXPORT_HTTP_TIMEOUT (default 5m, downloads
// of large archives included).
func New(creds Credentials, opts ...Option) *Client {
	timeout := 5 * time.Minute
	if t := os.Getenv("NEXPORT_HTTP_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	c := &Client{
		baseURL: defaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// enqueueTaskRequest is the payload for the enqueueTask endpoint.
type enqueueTaskRequest struct {
	Task taskSpec `json:"task"`
}

type taskSpec struct {
	EventName string        `json:"eventName"`
	Request   exportRequest `json:"request"`
}

type exportRequest struct {
	Block         blockRef       `json:"block"`
	Recursive     bool           `json:"recursive"`
	ExportOptions map[string]any `json:"exportOptions"`
}

type blockRef struct {
	ID string `json:"id"`
}

type enqueueTaskResponse struct {
	TaskID string `json:"taskId"`
}

// EnqueueExport submits an export job for the given page and returns the
// remote task ID. The page ID is normalized and validated before the call.
func (c *Client) EnqueueExport(ctx context.Context, pageID string, opts models.ExportOptions) (string, error) {
	id, err := models.NormalizePageID(pageID)
	if err != nil {
		return "", err
	}

	exportOptions := map[string]any{
		"exportType":               string(opts.Format),
		"locale":                   "en",
		"timeZone":                 "Europe/London",
		"collectionViewExportType": string(opts.View),
		"flattenExportFiletree":    opts.Flatten,
	}
	for k, v := range opts.FormatOptions() {
		exportOptions[k] = v
	}

	payload := enqueueTaskRequest{
		Task: taskSpec{
			EventName: "exportBlock",
			Request: exportRequest{
				Block:         blockRef{ID: id},
				Recursive:     opts.Recursive,
				ExportOptions: exportOptions,
			},
		},
	}

	var resp enqueueTaskResponse
	if err := c.post(ctx, "/enqueueTask", payload, &resp); err != nil {
		return "", fmt.Errorf("enqueue export: %w", err)
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("enqueue export: no task id in response")
	}
	return resp.TaskID, nil
}

// getTasksRequest is the payload for the getTasks endpoint.
type getTasksRequest struct {
	TaskIDs []string `json:"taskIds"`
}

type getTasksResponse struct {
	Results []taskResult `json:"results"`
}

type taskResult struct {
	ID     string            `json:"id"`
	State  string            `json:"state"`
	Error  string            `json:"error,omitempty"`
	Status *taskResultStatus `json:"status,omitempty"`
}

type taskResultStatus struct {
	Type          string `json:"type"`
	PagesExported int    `json:"pagesExported"`
	ExportURL     string `json:"exportURL"`
}

// TaskStatus fetches the current status of an export task. It returns a nil
// status (and nil error) when the remote service has no record of the task
// yet; callers should retry after the polling interval.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*models.TaskStatus, error) {
	var resp getTasksResponse
	if err := c.post(ctx, "/getTasks", getTasksRequest{TaskIDs: []string{taskID}}, &resp); err != nil {
		return nil, fmt.Errorf("get task status: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	result := resp.Results[0]
	if result.State == "" {
		return nil, nil
	}

	status := &models.TaskStatus{
		State: models.TaskState(result.State),
		Error: result.Error,
	}
	if result.Status != nil {
		status.ExportURL = result.Status.ExportURL
		status.PagesExported = result.Status.PagesExported
	}
	return status, nil
}

// Download fetches an export artifact. The caller must close the returned
// reader. Downloads use the file token, not the API token.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", fmt.Sprintf("file_token=%s;", c.creds.FileToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download: server error: %s", resp.Status)
	}
	return resp.Body, nil
}

// post sends a JSON request to an API endpoint and decodes the response.
func (c *Client) post(ctx context.Context, path string, payload, result any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", fmt.Sprintf("token_v2=%s;", c.creds.TokenV2))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
