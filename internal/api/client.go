package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"golang.org/x/net/http/httpproxy"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiClient talks to the Generative Language API
type GeminiClient struct {
	httpClient HTTPDoer
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	proxyURL   string
	logger     *slog.Logger
}

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the model identifier
func WithModel(model string) ClientOption {
	return func(c *GeminiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *GeminiClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the transport timeout for a request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *GeminiClient) {
		c.timeout = timeout
	}
}

// WithProxy routes requests through proxyURL instead of the environment's proxy
func WithProxy(proxyURL string) ClientOption {
	return func(c *GeminiClient) {
		c.proxyURL = proxyURL
	}
}

// WithClientLogger sets the logger for response diagnostics
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *GeminiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient injects the HTTP client (used by tests)
func WithHTTPClient(httpClient HTTPDoer) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new GeminiClient
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	client := &GeminiClient{
		apiKey:  apiKey,
		model:   models.DefaultModel,
		baseURL: models.EndpointBase,
		timeout: 300 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		httpClient, err := newTLSClient(client.baseURL, client.timeout, client.proxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// newTLSClient builds the transport, honouring HTTPS_PROXY/NO_PROXY when no proxy is given
func newTLSClient(baseURL string, timeout time.Duration, proxyURL string) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	if proxyURL == "" {
		proxyURL = proxyFromEnvironment(baseURL)
	}
	if proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(proxyURL))
	}

	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

// proxyFromEnvironment resolves the proxy for target from the standard variables
func proxyFromEnvironment(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	proxy, err := httpproxy.FromEnvironment().ProxyFunc()(u)
	if err != nil || proxy == nil {
		return ""
	}
	return proxy.String()
}

// GetModel returns the model identifier
func (c *GeminiClient) GetModel() string {
	return c.model
}

// Endpoint returns the generateContent URL for the current model
func (c *GeminiClient) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.GetModel()))
}
