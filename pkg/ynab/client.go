package ynab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/finlabs/ynab-mcp/pkg/errors"
	"github.com/finlabs/ynab-mcp/pkg/logging"
)

const defaultBaseURL = "https://api.ynab.com/v1"

// Client is a YNAB API client with bearer-token auth, a TTL response cache
// and a request rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *ResponseCache
	limiter    *rate.Limiter
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point at a local
// server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithCache sets the response cache.
func WithCache(cache *ResponseCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithRateLimit caps outbound requests per second. YNAB enforces 200
// requests per hour per token; the default limiter stays well under that.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the given access token. An empty token is a
// provider fault.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New(errors.KindProvider, "access token is empty")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		cache:      NewResponseCache(5 * time.Minute),
		limiter:    rate.NewLimiter(rate.Limit(1), 5),
		logger:     logging.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches path relative to the base URL, consulting the cache first.
// Responses are cached on success only.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	if body, ok := c.cache.Get(path); ok {
		c.logger.Debug("cache hit", "path", path)
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "rate limiter wait", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "read response body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.KindProvider, "unexpected status %d for %s", resp.StatusCode, path)
	}

	c.cache.Set(path, body)
	return body, nil
}

// GetBudget fetches one budget.
func (c *Client) GetBudget(ctx context.Context, budgetID string) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("/budgets/%s", budgetID))
}

// GetCategories fetches the category groups of a budget.
func (c *Client) GetCategories(ctx context.Context, budgetID string) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("/budgets/%s/categories", budgetID))
}

// GetTransactions fetches the transactions of a budget.
func (c *Client) GetTransactions(ctx context.Context, budgetID string) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("/budgets/%s/transactions", budgetID))
}

// GetAccounts fetches the accounts of a budget.
func (c *Client) GetAccounts(ctx context.Context, budgetID string) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("/budgets/%s/accounts", budgetID))
}

// BatchResult is one slot of a Batch call: the body on success, or the error
// for that slot alone.
type BatchResult struct {
	Body []byte
	Err  error
}

// Batch fetches several paths concurrently. Results come back in the order
// the paths were given; a failed fetch fills its own slot's Err without
// aborting the siblings.
func (c *Client) Batch(ctx context.Context, paths []string) []BatchResult {
	results := make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			body, err := c.Get(ctx, path)
			results[i] = BatchResult{Body: body, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Bundle is a budget together with its categories and transactions, fetched
// in one batch.
type Bundle struct {
	Budget       []byte
	Categories   []byte
	Transactions []byte
}

// GetBudgetBundle fetches a budget, its categories and its transactions
// concurrently. Any slot failure fails the whole bundle.
func (c *Client) GetBudgetBundle(ctx context.Context, budgetID string) (*Bundle, error) {
	results := c.Batch(ctx, []string{
		fmt.Sprintf("/budgets/%s", budgetID),
		fmt.Sprintf("/budgets/%s/categories", budgetID),
		fmt.Sprintf("/budgets/%s/transactions", budgetID),
	})
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
	}
	return &Bundle{
		Budget:       results[0].Body,
		Categories:   results[1].Body,
		Transactions: results[2].Body,
	}, nil
}

// ValidateToken checks the token against the user endpoint.
func (c *Client) ValidateToken(ctx context.Context) error {
	_, err := c.Get(ctx, "/user")
	return err
}
