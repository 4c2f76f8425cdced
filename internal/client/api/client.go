// Package api is a small HTTP client for the TaskKeeper REST API. It keeps
// the session token returned by register/login and sends it on every
// authenticated call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// ErrNotLoggedIn is returned by authenticated calls made without a token.
var ErrNotLoggedIn = errors.New("not logged in")

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

type Account struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type Task struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	Owner       string `json:"_owner"`
}

// TaskUpdate is the PATCH body. Text is left unchanged when nil; Completed
// is always sent because the server resets completion unless it is true.
type TaskUpdate struct {
	Text      *string `json:"text,omitempty"`
	Completed bool    `json:"completed"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) LoggedIn() bool {
	return c.Token() != ""
}

func (c *Client) do(ctx context.Context, method, path string, authenticated bool, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := c.Token()
		if token == "" {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set(common.AuthHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &e)
		return nil, &Error{Status: resp.StatusCode, Message: e.Error}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Account, error) {
	var account Account
	resp, err := c.do(ctx, http.MethodPost, path, false, credentials{Email: email, Password: password}, &account)
	if err != nil {
		return nil, err
	}
	token := resp.Header.Get(common.AuthHeaderName)
	if token == "" {
		return nil, errors.New("server did not return a session token")
	}
	c.setToken(token)
	return &account, nil
}

// Register creates an account and starts a session for it.
func (c *Client) Register(ctx context.Context, email, password string) (*Account, error) {
	return c.authenticate(ctx, "/accounts", email, password)
}

// Login starts a new session. Sessions opened elsewhere stay valid.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	return c.authenticate(ctx, "/accounts/login", email, password)
}

// Logout revokes the current token on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/accounts/me/token", true, nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if _, err := c.do(ctx, http.MethodGet, "/accounts/me", true, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) CreateTask(ctx context.Context, text string) (*Task, error) {
	var task Task
	if _, err := c.do(ctx, http.MethodPost, "/tasks", true, map[string]string{"text": text}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/tasks", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

type taskEnvelope struct {
	Task Task `json:"task"`
}

func (c *Client) taskCall(ctx context.Context, method, id string, in any) (*Task, error) {
	var out taskEnvelope
	if _, err := c.do(ctx, method, "/tasks/"+id, true, in, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	return c.taskCall(ctx, http.MethodGet, id, nil)
}

func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error) {
	return c.taskCall(ctx, http.MethodPatch, id, update)
}

func (c *Client) DeleteTask(ctx context.Context, id string) (*Task, error) {
	return c.taskCall(ctx, http.MethodDelete, id, nil)
}

// Ping checks that the server answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", false, nil, nil)
	return err
}
