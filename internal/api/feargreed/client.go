package feargreed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/Pulse/internal/platform/http"
	"github.com/Alias1177/Pulse/models"
)

// Client fetches the crypto fear & greed composite index.
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new fear & greed client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     uint64
}

// NewClient creates a new fear & greed index client
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = "https://api.alternative.me"
	}

	return &Client{
		baseURL: options.BaseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:    options.RequestTimeout,
			MaxRetries: options.MaxRetries,
		}),
		logger: log.With().Str("component", "feargreed_client").Logger(),
	}
}

// indexResponse mirrors the alternative.me /fng payload. Values arrive as
// strings.
type indexResponse struct {
	Data []struct {
		Value     string `json:"value"`
		Timestamp string `json:"timestamp"`
	} `json:"data"`
}

// GetIndex fetches the latest index reading (0-100).
func (c *Client) GetIndex(ctx context.Context) (models.SentimentReading, error) {
	url := fmt.Sprintf("%s/fng/?limit=1", c.baseURL)

	c.logger.Debug().Str("url", url).Msg("Fetching fear & greed index")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.SentimentReading{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Fear & greed request failed")
		return models.SentimentReading{}, fmt.Errorf("fear & greed request: %v: %w", err, models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SentimentReading{}, fmt.Errorf("reading response body: %w", err)
	}

	var payload indexResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.SentimentReading{}, fmt.Errorf("parsing index: %w", models.ErrUpstreamUnavailable)
	}
	if len(payload.Data) == 0 {
		return models.SentimentReading{}, fmt.Errorf("empty index response: %w", models.ErrUpstreamUnavailable)
	}

	value, err := strconv.Atoi(payload.Data[0].Value)
	if err != nil {
		return models.SentimentReading{}, fmt.Errorf("parsing index value %q: %w", payload.Data[0].Value, models.ErrUpstreamUnavailable)
	}

	asOf := time.Now().UTC()
	if ts, err := strconv.ParseInt(payload.Data[0].Timestamp, 10, 64); err == nil {
		asOf = time.Unix(ts, 0).UTC()
	}

	c.logger.Debug().Int("value", value).Time("as_of", asOf).Msg("Fetched fear & greed index")
	return models.SentimentReading{Value: value, AsOf: asOf}, nil
}
