// Package api is the single HTTP access point to the task manager server.
// All requests carry the session token as a bearer credential when one is
// set; there is no retry and no response caching.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ines/taskdeck/internal/models"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrNoResponse marks transport failures where no server response
	// arrived at all (connection refused, DNS failure, timeout).
	ErrNoResponse = errors.New("no response from server")
)

// APIError is a server-responded error (status >= 400) with the raw body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}

// Is maps well-known status codes onto the package sentinels so callers
// can use errors.Is without unwrapping.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client is an HTTP client for the task manager server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New creates a client for the given server. The token may be empty for
// unauthenticated use (login, register).
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithTimeout overrides the default request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.HTTP.Timeout = d
	return c
}

// SetToken installs or clears the bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// --- Auth ---

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the raw session token. The server
// responds with the bare token string, not JSON.
func (c *Client) Login(email, password string) (string, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	token := strings.TrimSpace(string(respBody))
	if token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return token, nil
}

// Register creates a new account. It does not authenticate it.
func (c *Client) Register(email, password string) error {
	return c.do(http.MethodPost, "/auth/register", credentials{Email: email, Password: password}, nil)
}

// --- Projects ---

// CreateProjectRequest is the body for POST /projects.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListProjects fetches one page of projects, optionally filtered by a
// search term. The search parameter is omitted from the URL when empty.
func (c *Client) ListProjects(search string, page, size int) (*models.Page[models.Project], error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var resp models.Page[models.Project]
	if err := c.do(http.MethodGet, "/projects?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(title, description string) (*models.Project, error) {
	var resp models.Project
	if err := c.do(http.MethodPost, "/projects", CreateProjectRequest{Title: title, Description: description}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProject fetches a single project by id.
func (c *Client) GetProject(id int64) (*models.Project, error) {
	var resp models.Project
	if err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProject removes a project and all its tasks.
func (c *Client) DeleteProject(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// GetProgress fetches the server-computed progress summary for a project.
func (c *Client) GetProgress(id int64) (*models.ProgressSummary, error) {
	var resp models.ProgressSummary
	if err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d/progress", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Tasks ---

// CreateTaskRequest is the body for POST /tasks/project/{id}.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// ListTasks fetches one page of a project's tasks. The status parameter is
// omitted when the filter is "all", matching the server's default.
func (c *Client) ListTasks(projectID int64, page, size int, status models.StatusFilter) (*models.Page[models.Task], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if status != "" && status != models.StatusAll {
		params.Set("status", string(status))
	}

	var resp models.Page[models.Task]
	path := fmt.Sprintf("/tasks/project/%d?%s", projectID, params.Encode())
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTask creates a task inside the given project.
func (c *Client) CreateTask(projectID int64, req CreateTaskRequest) (*models.Task, error) {
	var resp models.Task
	if err := c.do(http.MethodPost, fmt.Sprintf("/tasks/project/%d", projectID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteTask marks a task completed. The transition is one-way.
func (c *Client) CompleteTask(taskID int64) error {
	return c.do(http.MethodPut, fmt.Sprintf("/tasks/%d/complete", taskID), nil, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(taskID int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil)
}

// --- HTTP plumbing ---

// do executes a JSON request. Failures classify three ways: *APIError when
// the server responded with an error status, ErrNoResponse-wrapped when the
// transport failed, and a plain error for request setup problems.
func (c *Client) do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
