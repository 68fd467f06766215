package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/WanderingWalnut/Grantly/common/httpclient"
	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/internal/domain"
)

const (
	DefaultBaseURL = "https://api.perplexity.ai"
	DefaultTimeout = 20 * time.Second

	opSearch        = "search.perplexity"
	maxErrorBodyLen = 4096
)

// Request is the body of a provider search call.
type Request struct {
	Query            Query    `json:"query"`
	MaxResults       int      `json:"max_results"`
	DomainFilter     []string `json:"search_domain_filter,omitempty"`
	MaxTokensPerPage int      `json:"max_tokens_per_page,omitempty"`
}

// Client runs ranked web searches. The returned document is the provider's
// raw JSON response; interpreting it is the caller's job.
type Client interface {
	Search(ctx context.Context, req Request) (json.RawMessage, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional: overrides the pooled default client
}

type perplexityClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Client for the Perplexity Search API.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigurationError(opSearch, "PERPLEXITY_API_KEY is required for live mode")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = httpclient.New(httpclient.Config{Timeout: timeout, UserAgent: "grantly-search/1.0"})
	}

	return &perplexityClient{
		http:    client,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

func (c *perplexityClient) Search(ctx context.Context, req Request) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.UpstreamTransportError(opSearch, isTimeout(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		body := strings.TrimSpace(string(raw))
		slog.WarnContext(ctx, "search provider returned error status",
			"status", resp.StatusCode,
			"body", logger.Truncate(body, 200),
			"duration_ms", time.Since(start).Milliseconds())
		return nil, domain.UpstreamHTTPError(opSearch, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamTransportError(opSearch, isTimeout(err), fmt.Errorf("reading body: %w", err))
	}

	slog.DebugContext(ctx, "search completed",
		"queries", len(req.Query.Strings()),
		"batched", req.Query.IsBatch(),
		"max_results", req.MaxResults,
		"duration_ms", time.Since(start).Milliseconds())

	return json.RawMessage(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
