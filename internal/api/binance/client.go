package binance

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

// Client is the Binance REST API client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Binance client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     uint64
}

// NewClient creates a new Binance API client
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = "https://api.binance.com"
	}

	return &Client{
		baseURL: options.BaseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		logger: log.With().Str("component", "binance_client").Logger(),
	}
}

// kline is one raw bar from the klines endpoint. Binance returns each bar
// as a positional JSON array with prices encoded as strings.
type kline []json.RawMessage

// GetKlines fetches candles for a symbol, oldest first.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	url := fmt.Sprintf(
		"%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, symbol, interval, limit,
	)

	c.logger.Debug().Str("url", url).Msg("Fetching klines")

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw []kline
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing klines JSON")
		return nil, fmt.Errorf("parsing klines: %w", models.ErrUpstreamUnavailable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty klines response: %w", models.ErrUpstreamUnavailable)
	}

	candles := make([]models.Candle, 0, len(raw))
	for _, k := range raw {
		candle, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("parsing kline: %w", err)
		}
		candles = append(candles, candle)
	}

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched klines")
	return candles, nil
}

// GetPrice fetches the current spot price for a symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, symbol)

	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("parsing ticker: %w", models.ErrUpstreamUnavailable)
	}

	price, err := strconv.ParseFloat(payload.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ticker price %q: %w", payload.Price, models.ErrUpstreamUnavailable)
	}
	return price, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("Binance request failed")
		return nil, fmt.Errorf("binance request: %v: %w", err, models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// parseKline decodes one positional bar: open time, open, high, low, close,
// volume, close time, ... Only the leading fields are used.
func parseKline(k kline) (models.Candle, error) {
	if len(k) < 6 {
		return models.Candle{}, fmt.Errorf("kline has %d fields: %w", len(k), models.ErrUpstreamUnavailable)
	}

	var openTime int64
	if err := json.Unmarshal(k[0], &openTime); err != nil {
		return models.Candle{}, err
	}

	fields := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		var s string
		if err := json.Unmarshal(k[i], &s); err != nil {
			return models.Candle{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Candle{}, err
		}
		fields[i-1] = v
	}

	return models.Candle{
		Datetime: time.UnixMilli(openTime).UTC().Format("2006-01-02 15:04:05"),
		Open:     fields[0],
		High:     fields[1],
		Low:      fields[2],
		Close:    fields[3],
		Volume:   fields[4],
	}, nil
}
