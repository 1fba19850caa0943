package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

// Client talks to the habit backend over its REST surface. It holds no task
// state: every read goes back to the backend, every write is a single round
// trip with no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListTasks fetches the full task list.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by its backend ID.
func (c *Client) GetTask(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask posts a new task and returns the persisted copy (with its ID).
func (c *Client) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces a task wholesale (the backend PUT is a full replace).
func (c *Client) UpdateTask(ctx context.Context, id int, task model.Task) (*model.Task, error) {
	var updated model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ListCategories fetches all known categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory registers a new category by name.
func (c *Client) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var created model.Category
	if err := c.do(ctx, http.MethodPost, "/categories/", model.Category{Name: name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		logger.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
