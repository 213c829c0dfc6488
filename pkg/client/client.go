package client

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Client struct {
	Tools ToolService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Tools: NewToolService(opts...),
	}
}

type RequestConfig struct {
	URL   string
	Token string

	SSE bool

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

// WithSSE connects using the legacy SSE transport instead of streamable HTTP.
func WithSSE() RequestOption {
	return func(c *RequestConfig) {
		c.SSE = true
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) connect(ctx context.Context) (*mcp.ClientSession, error) {
	client := *c.Client

	transport := client.Transport

	if transport == nil {
		transport = http.DefaultTransport
	}

	client.Transport = &rt{
		headers: c.headers(),
		next:    transport,
	}

	impl := &mcp.Implementation{
		Name:    "waves-mcp-client",
		Version: "dev",
	}

	var t mcp.Transport = &mcp.StreamableClientTransport{
		Endpoint:   c.URL,
		HTTPClient: &client,
	}

	if c.SSE {
		t = &mcp.SSEClientTransport{
			Endpoint:   c.URL,
			HTTPClient: &client,
		}
	}

	return mcp.NewClient(impl, nil).Connect(ctx, t, nil)
}

func (c *RequestConfig) headers() map[string]string {
	headers := map[string]string{}

	if c.Token != "" {
		headers["Authorization"] = "Bearer " + c.Token
	}

	return headers
}

type rt struct {
	headers map[string]string

	next http.RoundTripper
}

func (rt *rt) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	for key, value := range rt.headers {
		if req.Header.Get(key) != "" {
			continue // already set
		}

		req.Header.Set(key, value)
	}

	return rt.next.RoundTrip(req)
}
