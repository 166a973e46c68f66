package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"opsbench/pkg/core/gate"
)

const (
	defaultBaseURL = "https://data.sec.gov"

	companyFactsPath = "/api/xbrl/companyfacts/CIK%010d.json"
	submissionsPath  = "/submissions/CIK%010d.json"

	// Required User-Agent per SEC fair-access guidelines.
	userAgent = "opsbench/1.0 (ops@opsbench.dev)"

	// SEC enforces 10 requests/second; stay comfortably under it.
	defaultMinInterval = 150 * time.Millisecond
)

// ErrUpstream marks a non-success or malformed response from the regulatory
// data service. Callers branch on it with errors.Is; this library never
// retries internally.
var ErrUpstream = errors.New("edgar: upstream failure")

// Client fetches EDGAR payloads with every call routed through the fetch
// gate, so concurrent profile builds share one rate-limit budget.
type Client struct {
	gate    *gate.Gate
	baseURL string
	log     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different host. Used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// NewClient builds a Client with its own gate over a 30s-timeout HTTP
// client; the SEC endpoints are occasionally slow.
func NewClient(log zerolog.Logger, opts ...ClientOption) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return newClient(gate.New(httpClient, defaultMinInterval, log), log, opts...)
}

// NewClientWithGate builds a Client over an existing gate. Used by callers
// that share one rate-limit budget across several clients, and by tests.
func NewClientWithGate(g *gate.Gate, log zerolog.Logger, opts ...ClientOption) *Client {
	return newClient(g, log, opts...)
}

func newClient(g *gate.Gate, log zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		gate:    g,
		baseURL: defaultBaseURL,
		log:     log.With().Str("component", "edgar-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying gate.
func (c *Client) Close() {
	c.gate.Close()
}

// FetchCompanyFacts retrieves the full XBRL fact set for a CIK.
func (c *Client) FetchCompanyFacts(ctx context.Context, cik int64) (*CompanyFacts, error) {
	body, err := c.get(ctx, c.baseURL+fmt.Sprintf(companyFactsPath, cik))
	if err != nil {
		return nil, err
	}
	cf, err := ParseCompanyFacts(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return cf, nil
}

// FetchCompanyMeta retrieves company metadata (name, SIC, tickers) for a CIK.
func (c *Client) FetchCompanyMeta(ctx context.Context, cik int64) (*CompanyMeta, error) {
	body, err := c.get(ctx, c.baseURL+fmt.Sprintf(submissionsPath, cik))
	if err != nil {
		return nil, err
	}
	meta, err := ParseCompanyMeta(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return meta, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.gate.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", reqID).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("edgar fetch")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", ErrUpstream, resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	return body, nil
}
