// Package api implements the HTTP JSON gateway to the Colbuilder backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/colbuilder-dev/colbuild/internal/config"
	"github.com/colbuilder-dev/colbuild/internal/http"
	"github.com/colbuilder-dev/colbuild/internal/logging"
)

// retryLogger bridges the retryablehttp.LeveledLogger interface to zerolog.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Retry chatter is debug-only noise for an interactive client.
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
}

// Client is the gateway used by the session store and the wizard. It is
// stateless apart from the shared cookie jar, which carries the server
// session cookie.
//
// Reads go through a retrying client; writes never do. A POST whose
// response is lost may already have taken effect server-side, so retrying
// a submit could create a duplicate job. Failed writes are surfaced to the
// user, who re-triggers the action.
type Client struct {
	readClient  *nethttp.Client
	writeClient *nethttp.Client
	baseURL     string
	logger      *logging.Logger
}

// NewClient creates a gateway client for the configured backend.
func NewClient(cfg *config.Config, jar nethttp.CookieJar, logger *logging.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, fmt.Errorf("server URL is empty; set server_url in the config file or pass --server")
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	base := http.NewClient(jar)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = base
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = &retryLogger{logger: logger}

	return &Client{
		readClient:  retryClient.StandardClient(),
		writeClient: base,
		baseURL:     strings.TrimSuffix(cfg.ServerURL, "/"),
		logger:      logger,
	}, nil
}

// envelope is the common part of every backend response body. The backend
// returns 200 with status "error" for business-rule failures, so callers
// branch on Status, never on the HTTP status code alone.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// doJSON performs a request and decodes the response into out (which may be
// nil). Business-rule failures come back as *APIError; anything else
// (network, parse, unexpected shape) is a transport error.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	url := c.baseURL + path
	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Only idempotent requests may be retried automatically.
	httpClient := c.writeClient
	if method == nethttp.MethodGet || method == nethttp.MethodHead {
		httpClient = c.readClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Debug().Str("path", path).Int("http_status", resp.StatusCode).Msg("non-JSON response")
		return fmt.Errorf("unexpected response: status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	if env.Status == statusError {
		return &APIError{
			HTTPStatus: resp.StatusCode,
			Message:    env.Message,
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
