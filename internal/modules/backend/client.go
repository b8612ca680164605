package backend

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

	"github.com/georgemunganga/printa-orders/internal/modules/auth"
	"github.com/georgemunganga/printa-orders/internal/pkg/logging"
	"github.com/georgemunganga/printa-orders/internal/pkg/metrics"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

var ErrEmptyResponse = errors.New("empty response body")

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Tokens, when set, supplies a bearer token for every request.
	Tokens  auth.TokenSource
	Metrics *metrics.BackendMetrics
	Service string

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks JSON over HTTP to the order service.
type Client struct {
	base    string
	http    *http.Client
	tokens  auth.TokenSource
	metrics *metrics.BackendMetrics
	service string

	// productIDs maps a product ID to whether the service sent it as a JSON number.
	productIDs sync.Map
}

func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		tokens:  cfg.Tokens,
		metrics: cfg.Metrics,
		service: cfg.Service,
	}
}

func (c *Client) rememberProductID(id wireID) {
	if id.value != "" {
		c.productIDs.Store(id.value, id.number)
	}
}

// productID returns id in the JSON form the service last used for it.
func (c *Client) productID(id string) wireID {
	if v, ok := c.productIDs.Load(id); ok {
		return wireID{value: id, number: v.(bool)}
	}
	return guessWireID(id)
}

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 reply.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// do performs one call and records its outcome in the log and metrics. An
// empty successful body leaves out untouched.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, out)
	elapsed := time.Since(start)

	c.metrics.Observe(op, err, elapsed)
	fields := logging.Fields{DurationMS: elapsed.Milliseconds(), Message: method + " " + path}
	if err != nil {
		logging.Failure(c.service, op, err, fields)
		return err
	}
	fields.Service, fields.Op, fields.Status = c.service, op, "ok"
	logging.Log(fields)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
