// Package rest implements core.API over the tracking service's JSON/HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/avyna/pkg/core"
)

const (
	// DefaultTimeout bounds a single request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is read for its message.
	maxErrorBody = 64 << 10

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Config holds the configuration for the API client.
type Config struct {
	BaseURL    string // e.g. "https://api.avyna.app/api"
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client // optional; Timeout is ignored when set
	Logger     *slog.Logger
}

// Client implements core.API.
type Client struct {
	base      string
	http      *http.Client
	userAgent string
	logger    *slog.Logger

	requests atomic.Int64
	failures atomic.Int64
}

// NewClient creates a client for the API rooted at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		base:      strings.TrimRight(u.String(), "/"),
		http:      hc,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// do sends req and decodes a successful JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	target := c.base + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(data)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return &core.TransportError{Method: req.method, URL: target, Err: err}
	}
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		hreq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}
	reqID := uuid.NewString()
	hreq.Header.Set(RequestIDHeader, reqID)

	c.requests.Add(1)
	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug("request failed", "method", req.method, "path", req.path, "request_id", reqID, "error", err)
		return &core.TransportError{Method: req.method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.failures.Add(1)
		return decodeError(req.method, target, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.method, req.path, err)
	}
	return nil
}

func decodeError(method, target string, resp *http.Response) error {
	herr := &core.HTTPError{Method: method, URL: target, Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return herr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		herr.Message = payload.Error
	}
	return herr
}

// --- Auth ---

// Register creates an account and returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, cred core.Credentials) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: cred}, &out)
	return out.Message, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, cred core.Credentials) (core.AuthSession, error) {
	payload := core.Credentials{Email: cred.Email, Password: cred.Password}
	var out core.AuthSession
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: payload}, &out)
	return out, err
}

// --- Profile ---

type userEnvelope struct {
	Message string    `json:"message,omitempty"`
	User    core.User `json:"user"`
}

func (c *Client) GetProfile(ctx context.Context, token string) (core.User, error) {
	var out userEnvelope
	err := c.do(ctx, request{method: http.MethodGet, path: "/profile/", token: token}, &out)
	return out.User, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p core.EditProfile) (core.User, error) {
	var out userEnvelope
	err := c.do(ctx, request{method: http.MethodPut, path: "/profile/", token: token, body: p}, &out)
	return out.User, err
}

func (c *Client) ChangePassword(ctx context.Context, token string, p core.PasswordChange) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{method: http.MethodPut, path: "/profile/change-password", token: token, body: p}, &out)
	return out.Message, err
}

func (c *Client) UpdateSubscription(ctx context.Context, token string, plan string) (core.User, error) {
	body := map[string]string{"subscription_plan": plan}
	var out userEnvelope
	err := c.do(ctx, request{method: http.MethodPut, path: "/profile/subscription", token: token, body: body}, &out)
	return out.User, err
}

// --- Symptoms ---

func (c *Client) CreateSymptomLog(ctx context.Context, token string, log core.HealthLog) (core.HealthLogResponse, error) {
	var out core.HealthLogResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/symptoms/", token: token, body: log}, &out)
	return out, err
}

// ListSymptoms fetches one page of logs. The offset is always sent.
func (c *Client) ListSymptoms(ctx context.Context, token string, opts core.ListOptions) (core.SymptomPage, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(opts.Offset))
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.StartDate != "" {
		q.Set("start_date", opts.StartDate)
	}
	if opts.EndDate != "" {
		q.Set("end_date", opts.EndDate)
	}
	if opts.Condition != "" {
		q.Set("condition", opts.Condition)
	}
	if opts.Sort != "" {
		q.Set("sort", string(opts.Sort))
	}

	var out core.SymptomPage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/symptoms/", query: q, token: token}, &out); err != nil {
		return core.SymptomPage{}, err
	}
	if out.Logs == nil {
		out.Logs = []core.SymptomLogEntry{}
	}
	return out, nil
}

func (c *Client) GetSymptomLog(ctx context.Context, token string, id core.LogID) (core.SymptomLogEntry, error) {
	if id == "" {
		return core.SymptomLogEntry{}, errors.New("log id cannot be empty")
	}
	var out struct {
		Log core.SymptomLogEntry `json:"log"`
	}
	path := "/symptoms/" + url.PathEscape(string(id))
	err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &out)
	return out.Log, err
}

// RecentSymptoms lists the logs of the last days, newest first.
func (c *Client) RecentSymptoms(ctx context.Context, token string, days int) (core.RecentLogs, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out core.RecentLogs
	if err := c.do(ctx, request{method: http.MethodGet, path: "/symptoms/recent", query: q, token: token}, &out); err != nil {
		return core.RecentLogs{}, err
	}
	if out.Logs == nil {
		out.Logs = []core.SymptomLogEntry{}
	}
	return out, nil
}

// GetAnalytics returns nil when the API has no logs for the period.
func (c *Client) GetAnalytics(ctx context.Context, token string, days int) (*core.Analytics, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out struct {
		Analytics *core.Analytics `json:"analytics"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/symptoms/analytics", query: q, token: token}, &out)
	return out.Analytics, err
}

// --- Recommendations ---

func (c *Client) GetRecommendation(ctx context.Context, token string, id core.LogID) (core.Recommendation, error) {
	if id == "" {
		return core.Recommendation{}, errors.New("log id cannot be empty")
	}
	var out struct {
		Recommendation core.Recommendation `json:"recommendation"`
	}
	path := "/recommendations/" + url.PathEscape(string(id))
	err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &out)
	return out.Recommendation, err
}

var _ core.API = (*Client)(nil)
