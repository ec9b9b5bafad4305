package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"go.miloapis.com/email-provider-mailchimp/pkg/version"
)

const (
	defaultDatacenter = "us1"
	baseURLFormat     = "https://%s.api.mailchimp.com/2.0"
)

// Client is the MailChimp API client. It holds no per-entity state and is safe
// for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logr.Logger
}

var _ API = (*Client)(nil)

// ClientOption defines a functional option for configuring the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the client, bypassing the datacenter
// derived from the API key.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. Timeouts, retries and connection
// pooling belong to this client, not to the binding.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger used for every call. Without it the logger is
// taken from the call's context.
func WithLogger(logger logr.Logger) ClientOption {
	return func(c *Client) {
		c.logger = &logger
	}
}

// NewSDK creates a new MailChimp API client.
//
// The datacenter is read from the suffix of the API key ("abc123-us2" talks to
// us2). Keys without a suffix use us1.
func NewSDK(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    fmt.Sprintf(baseURLFormat, Datacenter(apiKey)),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if c.httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}

	return c, nil
}

// Datacenter returns the datacenter embedded in an API key.
func Datacenter(apiKey string) string {
	i := strings.LastIndex(apiKey, "-")
	if i < 0 || i == len(apiKey)-1 {
		return defaultDatacenter
	}
	return apiKey[i+1:]
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// params is the flat parameter mapping sent for one remote method.
type params map[string]any

// call invokes a remote method ("lists/subscribe") with the given parameters
// and decodes the response into out.
func (c *Client) call(ctx context.Context, method string, p params, out any) error {
	body := make(map[string]any, len(p)+1)
	for k, v := range p {
		body[k] = v
	}
	body["apikey"] = c.apiKey

	return c.sendRequest(ctx, method, body, out)
}

func (c *Client) loggerFor(ctx context.Context) logr.Logger {
	if c.logger != nil {
		return *c.logger
	}
	return logr.FromContextOrDiscard(ctx)
}

func (c *Client) sendRequest(ctx context.Context, method string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s.json", c.baseURL, method), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	log := c.loggerFor(ctx).WithValues("method", method, "requestID", uuid.NewString())
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.V(1).Info("MailChimp call failed", "error", err.Error(), "duration", time.Since(start))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	log.V(1).Info("MailChimp call completed", "status", resp.StatusCode, "duration", time.Since(start))

	if apiErr := parseError(resp.StatusCode, respBody); apiErr != nil {
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CompleteResult is the acknowledgement most action methods return.
type CompleteResult struct {
	Complete bool `json:"complete"`
}

// IDResult is returned by methods that create something identified by an int.
type IDResult struct {
	ID int `json:"id"`
}
