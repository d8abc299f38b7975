package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Pulse/internal/classify"
	"github.com/Alias1177/Pulse/internal/fusion"
	"github.com/Alias1177/Pulse/internal/indicators"
	"github.com/Alias1177/Pulse/internal/sentiment"
	"github.com/Alias1177/Pulse/models"
)

// Engine wires the price and sentiment sources into the synthesis pipeline.
// It holds no mutable state: every Synthesize call reads only its own
// inputs, so concurrent calls need no coordination.
type Engine struct {
	prices      models.PriceSource
	sentiments  models.SentimentSource
	candleCount int
	logger      zerolog.Logger
}

// New creates a synthesis engine over the given sources.
func New(prices models.PriceSource, sentiments models.SentimentSource, candleCount int) *Engine {
	if candleCount <= 0 {
		candleCount = 250
	}
	return &Engine{
		prices:      prices,
		sentiments:  sentiments,
		candleCount: candleCount,
		logger:      log.With().Str("component", "engine").Logger(),
	}
}

// Synthesize runs the full pipeline for one symbol and interval: fetch the
// series, compute indicators, classify, normalize sentiment and fuse.
// Upstream failures return a typed error with no recommendation attached;
// a short series only degrades the classification, it does not fail the
// call.
func (e *Engine) Synthesize(ctx context.Context, symbol, interval string) (models.Recommendation, error) {
	candles, err := e.prices.GetKlines(ctx, symbol, interval, e.candleCount)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("fetching klines for %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		return models.Recommendation{}, fmt.Errorf("no candles for %s: %w", symbol, models.ErrUpstreamUnavailable)
	}

	series := models.NewPriceSeries(symbol, interval, candles)

	currentPrice, err := e.prices.GetPrice(ctx, symbol)
	if err != nil {
		// The last close is a good enough stand-in for classification.
		e.logger.Warn().Err(err).Str("symbol", symbol).Msg("Live quote unavailable, using last close")
		currentPrice = series.LastClose()
	}

	horizons := indicators.HorizonSet{
		Position:  true,
		ShortTerm: models.IsIntraday(interval),
	}
	set := indicators.Compute(series, horizons)
	technical := classify.Technical(set, currentPrice, interval)

	reading, err := e.sentiments.GetIndex(ctx)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("fetching sentiment index: %w", err)
	}
	label := sentiment.Normalize(reading.Value)

	rec, err := fusion.Synthesize(technical, label)
	if err != nil {
		return models.Recommendation{}, err
	}
	rec.Symbol = symbol
	rec.Interval = interval

	e.logger.Info().
		Str("symbol", symbol).
		Str("interval", interval).
		Str("direction", rec.Direction).
		Str("confidence", rec.Confidence).
		Str("horizon", rec.Horizon).
		Str("trend", string(technical.Trend)).
		Str("momentum", string(technical.Momentum)).
		Str("sentiment", string(label)).
		Msg("Synthesized recommendation")

	return rec, nil
}
