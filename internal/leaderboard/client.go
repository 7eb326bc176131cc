package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client talks to the leaderboard API server
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the API at baseURL. A nil httpClient
// gets a default one with a short timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetToken sets the bearer token sent with authenticated requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type totalResponse struct {
	Total int `json:"total"`
}

type apiError struct {
	Error string `json:"error"`
}

// Login exchanges credentials for a token and keeps it for later calls
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{username, password}, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", registerRequest{username, email, password}, nil)
}

func (c *Client) Submit(ctx context.Context, s Submission) (*Receipt, error) {
	s.Username = strings.TrimSpace(s.Username)
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := c.do(ctx, http.MethodPost, "/api/scores", s, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) FetchTop(ctx context.Context, count int) ([]Entry, error) {
	path := "/api/leaderboard?" + url.Values{"count": {strconv.Itoa(ClampCount(count))}}.Encode()

	var entries []Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Total returns the number of submissions on the leaderboard
func (c *Client) Total(ctx context.Context) (int, error) {
	var resp totalResponse
	if err := c.do(ctx, http.MethodGet, "/api/scores/total", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrNetwork, err)
	}
	return nil
}

// statusError classifies an error response from the API
func statusError(resp *http.Response) error {
	var body apiError
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = ErrRejected
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired:
		kind = ErrInsufficientResources
	case resp.StatusCode == http.StatusBadRequest:
		kind = ErrInvalidSubmission
	case resp.StatusCode >= 500:
		kind = ErrNetwork
	default:
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
	return fmt.Errorf("%w: %w", kind, &StatusError{Code: resp.StatusCode, Message: msg})
}

// StatusError is an unsuccessful API response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Code)
}

// IsStatus reports whether err came from an API response with the code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
