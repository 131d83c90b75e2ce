package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/pkg/metrics"
)

// Client is an authenticated HTTP client over the broker's management API.
// Credentials live only in process memory. The virtual-host listing is the
// only cached read; everything else always fetches fresh, which the teardown
// fixed-point loop depends on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	collector  metrics.Collector

	mu            sync.RWMutex
	username      string
	password      string
	authenticated bool
	vhostCache    []models.VHostDTO
	credGen       uint64

	group singleflight.Group
}

// NewClient creates a gateway client for the given management API base URL
// (e.g. "http://localhost:15672"). No credentials are set yet.
func NewClient(baseURL string, collector metrics.Collector) *Client {
	if collector == nil {
		collector = metrics.NewNoop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		collector:  collector,
	}
}

// SetCredentials replaces the client's credentials and invalidates all caches.
func (c *Client) SetCredentials(username, password string) {
	c.mu.Lock()
	c.username = username
	c.password = password
	c.authenticated = true
	c.vhostCache = nil
	c.credGen++
	c.mu.Unlock()
	c.group.Forget("vhosts")
}

// ClearCredentials unsets the credentials; subsequent calls fail with
// ErrUnauthenticated.
func (c *Client) ClearCredentials() {
	c.mu.Lock()
	c.username = ""
	c.password = ""
	c.authenticated = false
	c.vhostCache = nil
	c.credGen++
	c.mu.Unlock()
	c.group.Forget("vhosts")
}

// do performs a management API request and decodes the JSON response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	c.mu.RLock()
	username, password, authenticated := c.username, c.password, c.authenticated
	c.mu.RUnlock()

	if !authenticated {
		return ErrUnauthenticated
	}

	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request %s: %w", op, err)
	}
	req.SetBasicAuth(username, password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.collector.RecordGatewayRequest(method, "error")
		return fmt.Errorf("request failed: %s: %w", op, err)
	}
	defer resp.Body.Close()

	c.collector.RecordGatewayRequest(method, fmt.Sprintf("%d", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &UnauthorizedError{Op: op}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: path}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Debug().Str("op", op).Int("status", resp.StatusCode).Msg("Management API request failed")
		return &RequestError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}
	return nil
}

// escape encodes a path segment; the default vhost "/" becomes "%2F".
func escape(segment string) string {
	return url.PathEscape(segment)
}
