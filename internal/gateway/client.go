// Package gateway talks to the gateway admin API: it is the collaborator that
// receives finished target descriptors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brizzai/target-wizard/internal/config"
	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	targetsPath   = "/targets/mcp"
	listenersPath = "/listeners"

	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
)

// ErrUnexpectedStatus is returned for non-2xx admin API responses
var ErrUnexpectedStatus = errors.New("unexpected gateway response")

// Listener is the part of a gateway listener the wizard needs
type Listener struct {
	Name     string `json:"name"`
	Protocol string `json:"protocol,omitempty"`
}

// Client is a gateway admin API client
type Client struct {
	client  *http.Client
	cfg     *config.GatewayConfig
	authMgr AuthManager
}

type ClientParams struct {
	fx.In

	GatewayConfig *config.GatewayConfig
	AuthManager   AuthManager
}

// NewClient creates a new Client
func NewClient(params ClientParams) *Client {
	timeout := params.GatewayConfig.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		cfg:     params.GatewayConfig,
		authMgr: params.AuthManager,
	}
}

// CreateTarget submits a target. Its signature matches the forms' submit
// collaborator so it can be passed as a method value.
func (c *Client) CreateTarget(ctx context.Context, t target.Target) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal target: %w", err)
	}

	logger.Info("Submitting target",
		zap.String("name", t.Name),
		zap.String("type", string(t.Type())),
		zap.Strings("listeners", t.Listeners),
	)
	_, err = c.do(ctx, http.MethodPost, targetsPath, bytes.NewReader(body))
	return err
}

// GetTarget fetches an existing target for edit mode
func (c *Client) GetTarget(ctx context.Context, name string) (*target.Descriptor, error) {
	data, err := c.do(ctx, http.MethodGet, targetsPath+"/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}

	var d target.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode target %s: %w", name, err)
	}
	return &d, nil
}

// ListListeners returns the listeners a target can be attached to
func (c *Client) ListListeners(ctx context.Context) ([]Listener, error) {
	data, err := c.do(ctx, http.MethodGet, listenersPath, nil)
	if err != nil {
		return nil, err
	}

	var listeners []Listener
	if err := json.Unmarshal(data, &listeners); err != nil {
		return nil, fmt.Errorf("failed to decode listeners: %w", err)
	}
	return listeners, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	if err := c.authMgr.ApplyAuth(req); err != nil {
		return nil, fmt.Errorf("failed to apply authentication: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("gateway request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s %s returned %d: %s",
			ErrUnexpectedStatus, method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
