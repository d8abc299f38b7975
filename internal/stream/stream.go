package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Pulse/models"
)

// State of the feed connection. Connection health is modeled as an explicit
// state machine instead of ambient flags so callers can observe exactly
// where the feed is in its lifecycle.
type State string

const (
	StateDisconnected State = "DISCONNECTED"
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
	StateReconnecting State = "RECONNECTING"
)

const (
	initialBackoff    = time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 1.8
	readTimeout       = 30 * time.Second
	pingInterval      = 15 * time.Second
)

// Feed is a reconnecting websocket client for Binance trade streams.
type Feed struct {
	baseURL    string
	symbols    []string
	maxRetries int

	mu    sync.RWMutex
	state State

	logger zerolog.Logger
}

// New creates a feed for the given symbols. maxRetries bounds consecutive
// failed connection attempts before Run gives up.
func New(symbols []string, maxRetries int) *Feed {
	if maxRetries <= 0 {
		maxRetries = 10
	}
	return &Feed{
		baseURL:    "wss://stream.binance.com:9443",
		symbols:    symbols,
		maxRetries: maxRetries,
		state:      StateDisconnected,
		logger:     log.With().Str("component", "stream").Logger(),
	}
}

// State returns the current connection state.
func (f *Feed) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *Feed) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Run connects and pumps trade events into out until the context is
// cancelled or the retry budget is exhausted. Each successful connection
// resets the retry counter and backoff.
func (f *Feed) Run(ctx context.Context, out chan<- models.MarketEvent) error {
	if len(f.symbols) == 0 {
		return fmt.Errorf("stream requires at least one symbol: %w", models.ErrMalformedInput)
	}

	streams := make([]string, len(f.symbols))
	for i, sym := range f.symbols {
		streams[i] = strings.ToLower(sym) + "@trade"
	}
	url := fmt.Sprintf("%s/stream?streams=%s", f.baseURL, strings.Join(streams, "/"))

	backoff := initialBackoff
	retries := 0

	defer f.setState(StateDisconnected)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if retries == 0 {
			f.setState(StateConnecting)
		} else {
			f.setState(StateReconnecting)
		}

		err := f.consume(ctx, url, out)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		retries++
		if retries > f.maxRetries {
			return fmt.Errorf("stream gave up after %d attempts: %v: %w", retries, err, models.ErrUpstreamUnavailable)
		}

		f.logger.Warn().Err(err).Int("attempt", retries).Dur("backoff", backoff).Msg("Stream disconnected, retrying")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff = nextBackoff(backoff)
	}
}

// nextBackoff grows the delay multiplicatively up to the cap.
func nextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * backoffMultiplier)
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

type tradeEnvelope struct {
	Stream string `json:"stream"`
	Data   struct {
		Symbol    string `json:"s"`
		Price     string `json:"p"`
		TradeTime int64  `json:"T"`
	} `json:"data"`
}

func (f *Feed) consume(ctx context.Context, url string, out chan<- models.MarketEvent) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.setState(StateConnected)
	f.logger.Info().Strs("symbols", f.symbols).Msg("Connected market data feed")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	// Unblock the read loop on cancellation.
	go func() {
		<-pingCtx.Done()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var envelope tradeEnvelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			f.logger.Debug().Err(err).Msg("Skipping unparseable stream message")
			continue
		}
		if envelope.Data.Symbol == "" {
			continue
		}

		price, err := strconv.ParseFloat(envelope.Data.Price, 64)
		if err != nil {
			continue
		}

		event := models.MarketEvent{
			Symbol: envelope.Data.Symbol,
			Price:  price,
			At:     time.UnixMilli(envelope.Data.TradeTime).UTC(),
		}

		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
