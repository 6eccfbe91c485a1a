package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// RequestTimeout bounds every outward call made through the shared client,
// including the LLM and Telegram clients that reuse it.
const RequestTimeout = 120 * time.Second

var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// userAgents is the fixed identity pool; one is picked at random per
// request to avoid trivial server-side blocking.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.2 Safari/605.1.15",
}

type Client struct {
	client *http.Client
}

type uaTransport struct {
	base http.RoundTripper
	rand *rand.Rand
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgents[t.rand.Intn(len(userAgents))])
	}
	return t.base.RoundTrip(req)
}

// New builds the shared HTTP client. The random source is injectable so
// tests can pin the chosen identity.
func New(src rand.Source) *Client {
	return &Client{
		client: &http.Client{
			Timeout: RequestTimeout,
			Transport: &uaTransport{
				base: http.DefaultTransport,
				rand: rand.New(src),
			},
		},
	}
}

// HTTPClient exposes the underlying client so SDK-based callers share the
// same identity and timeout policy.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// Do performs a GET or POST and returns the response body. Any transport
// error, timeout or non-2xx status is logged and returned as an error, so
// callers see a uniform "no result" outcome.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, error) {
	switch method {
	case http.MethodGet, http.MethodPost:
	default:
		log.Printf("Unsupported HTTP method: %s", method)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		log.Printf("Failed to build request for %s: %v", url, err)
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Request failed for %s: %v", url, err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Failed to read response from %s: %v", url, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Request to %s returned status %d: %s", url, resp.StatusCode, truncateForLog(data))
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return data, nil
}

// Get fetches a URL through the shared identity and timeout policy.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// Post sends a body with the given headers.
func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body io.Reader) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, url, headers, body)
}

func truncateForLog(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
