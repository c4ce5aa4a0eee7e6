package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the Open Trivia DB question endpoint.
	DefaultBaseURL = "https://opentdb.com/api.php"

	// CategoryHistory is the provider's id for the History category.
	CategoryHistory = 23

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// Source fetches one batch of normalized questions.
type Source interface {
	Fetch(ctx context.Context, req Request) ([]Question, error)
}

// Client is a Source backed by the Open Trivia DB REST API. It issues
// exactly one HTTP request per Fetch and never retries.
type Client struct {
	client   *http.Client
	baseURL  string
	category int
	logger   *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client = &http.Client{Timeout: d}
		}
	}
}

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCategory overrides the trivia category id.
func WithCategory(id int) Option {
	return func(c *Client) { c.category = id }
}

// WithRand sets the random source used to shuffle answers.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:   &http.Client{Timeout: 15 * time.Second},
		baseURL:  DefaultBaseURL,
		category: CategoryHistory,
		logger:   slog.Default(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is the provider envelope.
type response struct {
	ResponseCode int         `json:"response_code"`
	Results      []RawRecord `json:"results"`
}

// Fetch requests one batch of questions. It returns *NetworkError for
// transport failures, *ProviderError for a non-zero response_code and
// *MalformedDataError for bodies that fail validation. Zero results with
// response_code 0 is a valid empty batch.
func (c *Client) Fetch(ctx context.Context, req Request) ([]Question, error) {
	u, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("provider request",
		"difficulty", req.Difficulty.String(),
		"amount", req.Amount,
		"type", string(req.Type),
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{StatusCode: resp.StatusCode}
	}

	if err := validateResponse(body); err != nil {
		return nil, err
	}

	var env response
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedDataError{Index: -1, Err: err}
	}
	if env.ResponseCode != CodeSuccess {
		return nil, &ProviderError{Code: env.ResponseCode}
	}

	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return Normalize(env.Results, c.rng)
}

func (c *Client) buildURL(req Request) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	q := base.Query()
	q.Set("amount", strconv.Itoa(req.Amount))
	q.Set("category", strconv.Itoa(c.category))
	if req.Difficulty != DifficultyUnset {
		q.Set("difficulty", string(req.Difficulty))
	}
	if req.Type != "" {
		q.Set("type", string(req.Type))
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}
