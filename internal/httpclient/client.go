package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is the browser identity sent with every request. Many
// profile pages serve an error or login wall to non-browser clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultMaxBodySize limits how much of a response body is read.
const DefaultMaxBodySize = 2 * 1024 * 1024

// defaultMaxRedirects bounds redirect chains such as login walls.
const defaultMaxRedirects = 10

// Response is the part of an HTTP response the probes care about.
type Response struct {
	StatusCode int
	Body       string

	// FinalURL is the URL after redirects.
	FinalURL string
}

// Fetcher performs one GET request. Implementations must honour ctx for
// cancellation and timeouts.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, headers http.Header) (*Response, error)
}

// Client is the net/http backed Fetcher.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	headers      http.Header
	maxBodySize  int64
	maxRedirects int
	proxyAddress string
	limiter      *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers.Set(k, v)
		}
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithProxy routes all requests through the SOCKS5 proxy at address.
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithRateLimit spaces out requests to at most rps per second across all
// goroutines sharing the client. Zero disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. Proxy settings are
// ignored when this option is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client. It fails only when a proxy address is malformed.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		userAgent:    DefaultUserAgent,
		headers:      make(http.Header),
		maxBodySize:  DefaultMaxBodySize,
		maxRedirects: defaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		return c, nil
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	// Some sites bounce through a cookie-setting redirect before the profile.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}) //nolint:errcheck // cookiejar.New only fails with invalid options

	c.httpClient = &http.Client{
		Transport: &headerInjectingTransport{
			base:      transport,
			userAgent: c.userAgent,
			headers:   c.headers,
		},
		Jar: jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= c.maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return c, nil
}

// Get issues one GET request for rawURL. The per-request timeout is taken
// from ctx. Any status code is a successful fetch; callers decide what a
// status means. Failures wrap model.ErrTimeout or model.ErrNetwork.
func (c *Client) Get(ctx context.Context, rawURL string, headers http.Header) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classify(rawURL, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", model.ErrNetwork, rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	for k, vs := range headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp, c.maxBodySize)
	if err != nil {
		return nil, classify(rawURL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// readBody reads at most limit bytes and converts them to UTF-8 according to
// the Content-Type header and any <meta charset> in the document.
func readBody(resp *http.Response, limit int64) (string, error) {
	limited := io.LimitReader(resp.Body, limit)
	reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown charset: fall back to the raw bytes.
		reader = limited
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// classify wraps err in the timeout or network sentinel.
func classify(rawURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: GET %s: %w", model.ErrTimeout, rawURL, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: GET %s: %w", model.ErrTimeout, rawURL, err)
	}
	return fmt.Errorf("%w: GET %s: %w", model.ErrNetwork, rawURL, err)
}

// isValidProxyAddress checks if the address is in valid "host:port" format.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535 && !strings.ContainsAny(host, "/?#")
}

// headerInjectingTransport sets the User-Agent and configured headers on
// every request, including those issued while following redirects.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   http.Header
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	for key, values := range t.headers {
		if clone.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			clone.Header.Add(key, v)
		}
	}
	return t.base.RoundTrip(clone)
}
