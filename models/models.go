package models

import (
	"errors"
	"time"
)

// Direction of a trading recommendation.
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Confidence levels attached to a recommendation.
const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// Suggested holding horizons.
const (
	HorizonShortTerm  = "SHORT_TERM"
	HorizonMediumTerm = "MEDIUM_TERM"
	HorizonLongTerm   = "LONG_TERM"
)

// TrendLabel is a categorical trend classification.
type TrendLabel string

const (
	TrendStronglyBullish TrendLabel = "STRONGLY_BULLISH"
	TrendBullish         TrendLabel = "BULLISH"
	TrendNeutral         TrendLabel = "NEUTRAL"
	TrendBearish         TrendLabel = "BEARISH"
	TrendStronglyBearish TrendLabel = "STRONGLY_BEARISH"
)

// MomentumSignal classifies the RSI-style oscillator reading.
type MomentumSignal string

const (
	MomentumOversold   MomentumSignal = "OVERSOLD"
	MomentumNeutral    MomentumSignal = "NEUTRAL"
	MomentumOverbought MomentumSignal = "OVERBOUGHT"
)

// SentimentLabel is the categorical form of the composite sentiment index.
type SentimentLabel string

const (
	SentimentExtremelyBearish SentimentLabel = "EXTREMELY_BEARISH"
	SentimentBearish          SentimentLabel = "BEARISH"
	SentimentNeutral          SentimentLabel = "NEUTRAL"
	SentimentBullish          SentimentLabel = "BULLISH"
	SentimentExtremelyBullish SentimentLabel = "EXTREMELY_BULLISH"
)

// Error taxonomy. Every failure in the synthesis pipeline wraps one of these.
var (
	// ErrInsufficientData means the price series is shorter than the window
	// an indicator needs. Indicators report it as an absent value, not a
	// fatal error.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformedInput means a structurally incomplete payload was handed
	// to the fusion engine.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUpstreamUnavailable means a price or sentiment source failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Candle represents a single price candle. Only Close participates in
// indicator math; the rest is kept for logging and persistence.
type Candle struct {
	Datetime string  `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume,omitempty"`
}

// PriceSeries holds an ordered run of closing prices for one symbol,
// oldest first. It is never mutated after construction.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Interval  string    `json:"interval"`
	Closes    []float64 `json:"closes"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewPriceSeries builds a series from candles, keeping only the closes.
func NewPriceSeries(symbol, interval string, candles []Candle) PriceSeries {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Closes:    closes,
		FetchedAt: time.Now().UTC(),
	}
}

// Len returns the number of closes in the series.
func (s PriceSeries) Len() int { return len(s.Closes) }

// LastClose returns the most recent close, or 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// IndicatorSet holds all computed indicator values for one series. A nil
// field means the series was too short for that indicator — zero is a valid
// computed value and is never used as a placeholder for "unknown".
type IndicatorSet struct {
	SMA5  *float64 `json:"sma5,omitempty"`
	SMA7  *float64 `json:"sma7,omitempty"`
	SMA10 *float64 `json:"sma10,omitempty"`
	SMA25 *float64 `json:"sma25,omitempty"`
	SMA99 *float64 `json:"sma99,omitempty"`

	EMA9  *float64 `json:"ema9,omitempty"`
	EMA21 *float64 `json:"ema21,omitempty"`

	RSI7  *float64 `json:"rsi7,omitempty"`
	RSI14 *float64 `json:"rsi14,omitempty"`

	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
}

// TechnicalSignal is the classifier's output for one series.
type TechnicalSignal struct {
	Trend          TrendLabel     `json:"trend"`
	ShortTermTrend TrendLabel     `json:"short_term_trend"`
	Momentum       MomentumSignal `json:"momentum"`
	MACDTrend      TrendLabel     `json:"macd_trend"`
	// ShortTermDirection is only set for intraday intervals: LONG, SHORT
	// or empty when no short-horizon setup is present.
	ShortTermDirection string `json:"short_term_direction,omitempty"`
}

// SentimentReading is the raw composite index as fetched from the source.
type SentimentReading struct {
	Value int       `json:"value"` // 0-100
	AsOf  time.Time `json:"as_of"`
}

// Recommendation is the final output of the fusion engine. It is created
// fresh for every synthesis call and never cached: by the time a caller
// could reuse one, market conditions are assumed to have changed.
type Recommendation struct {
	ID                 string         `json:"id"`
	Symbol             string         `json:"symbol"`
	Interval           string         `json:"interval"`
	Direction          string         `json:"direction"`
	Confidence         string         `json:"confidence"`
	Horizon            string         `json:"horizon"`
	TechnicalDirection string         `json:"technical_direction"`
	SentimentDirection string         `json:"sentiment_direction"`
	SentimentLabel     SentimentLabel `json:"sentiment_label"`
	Trend              TrendLabel     `json:"trend"`
	ProducedAt         time.Time      `json:"produced_at"`
}

// MarketEvent is one live trade tick from the streaming transport.
type MarketEvent struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	At     time.Time `json:"at"`
}
