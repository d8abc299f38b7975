package classify

import (
	"testing"

	"github.com/Alias1177/Pulse/models"
)

func f(v float64) *float64 { return &v }

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		set      models.IndicatorSet
		price    float64
		expected models.TrendLabel
	}{
		{
			name:     "above all three averages",
			set:      models.IndicatorSet{SMA7: f(90), SMA25: f(80), SMA99: f(70)},
			price:    100,
			expected: models.TrendStronglyBullish,
		},
		{
			name:     "above the two shorter averages only",
			set:      models.IndicatorSet{SMA7: f(90), SMA25: f(95), SMA99: f(110)},
			price:    100,
			expected: models.TrendBullish,
		},
		{
			name:     "below all three averages",
			set:      models.IndicatorSet{SMA7: f(110), SMA25: f(120), SMA99: f(130)},
			price:    100,
			expected: models.TrendStronglyBearish,
		},
		{
			name:     "below the two shorter averages only",
			set:      models.IndicatorSet{SMA7: f(110), SMA25: f(120), SMA99: f(90)},
			price:    100,
			expected: models.TrendBearish,
		},
		{
			name:     "mixed alignment is neutral",
			set:      models.IndicatorSet{SMA7: f(90), SMA25: f(110), SMA99: f(120)},
			price:    100,
			expected: models.TrendNeutral,
		},
		{
			// Inherited quirk: a missing average compares as a zero
			// baseline, so any positive price counts as "above" it.
			name:     "missing long average biases above",
			set:      models.IndicatorSet{SMA7: f(90), SMA25: f(80)},
			price:    100,
			expected: models.TrendStronglyBullish,
		},
		{
			name:     "all averages missing reads strongly bullish",
			set:      models.IndicatorSet{},
			price:    100,
			expected: models.TrendStronglyBullish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trend(tt.set, tt.price); got != tt.expected {
				t.Errorf("Trend() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShortTermTrend(t *testing.T) {
	tests := []struct {
		name     string
		set      models.IndicatorSet
		price    float64
		expected models.TrendLabel
	}{
		{
			name:     "above both MAs with bullish EMA cross",
			set:      models.IndicatorSet{SMA5: f(95), SMA10: f(90), EMA9: f(96), EMA21: f(92)},
			price:    100,
			expected: models.TrendStronglyBullish,
		},
		{
			name:     "above both MAs with bearish EMA cross",
			set:      models.IndicatorSet{SMA5: f(95), SMA10: f(90), EMA9: f(92), EMA21: f(96)},
			price:    100,
			expected: models.TrendBullish,
		},
		{
			name:     "below everything",
			set:      models.IndicatorSet{SMA5: f(105), SMA10: f(110), EMA9: f(100), EMA21: f(104)},
			price:    100,
			expected: models.TrendStronglyBearish,
		},
		{
			name:     "below both MAs with bullish EMA cross",
			set:      models.IndicatorSet{SMA5: f(105), SMA10: f(110), EMA9: f(104), EMA21: f(100)},
			price:    100,
			expected: models.TrendBearish,
		},
		{
			name:     "mixed is neutral",
			set:      models.IndicatorSet{SMA5: f(95), SMA10: f(110), EMA9: f(100), EMA21: f(104)},
			price:    100,
			expected: models.TrendNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortTermTrend(tt.set, tt.price); got != tt.expected {
				t.Errorf("ShortTermTrend() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMomentum(t *testing.T) {
	tests := []struct {
		name     string
		rsi      *float64
		expected models.MomentumSignal
	}{
		{name: "missing reading degrades to neutral", rsi: nil, expected: models.MomentumNeutral},
		{name: "exactly 30 is oversold", rsi: f(30), expected: models.MomentumOversold},
		{name: "just above 30 is neutral", rsi: f(30.01), expected: models.MomentumNeutral},
		{name: "midrange is neutral", rsi: f(50), expected: models.MomentumNeutral},
		{name: "just below 70 is neutral", rsi: f(69.99), expected: models.MomentumNeutral},
		{name: "exactly 70 is overbought", rsi: f(70), expected: models.MomentumOverbought},
		{name: "pegged at 100 is overbought", rsi: f(100), expected: models.MomentumOverbought},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Momentum(tt.rsi); got != tt.expected {
				t.Errorf("Momentum() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMACDTrend(t *testing.T) {
	tests := []struct {
		name     string
		set      models.IndicatorSet
		price    float64
		expected models.TrendLabel
	}{
		{
			name:     "absent oscillator is neutral",
			set:      models.IndicatorSet{},
			price:    100,
			expected: models.TrendNeutral,
		},
		{
			// Noise floor is 0.01% of price: |hist| = 0.005 < 0.01.
			name:     "histogram inside the noise floor",
			set:      models.IndicatorSet{MACD: f(1), MACDSignal: f(0.995), MACDHist: f(0.005)},
			price:    100,
			expected: models.TrendNeutral,
		},
		{
			name:     "positive histogram with positive main line",
			set:      models.IndicatorSet{MACD: f(2), MACDSignal: f(0.4), MACDHist: f(1.6)},
			price:    100,
			expected: models.TrendStronglyBullish,
		},
		{
			name:     "positive histogram with negative main line",
			set:      models.IndicatorSet{MACD: f(-0.5), MACDSignal: f(-2), MACDHist: f(1.5)},
			price:    100,
			expected: models.TrendBullish,
		},
		{
			name:     "negative histogram with negative main line",
			set:      models.IndicatorSet{MACD: f(-2), MACDSignal: f(-0.4), MACDHist: f(-1.6)},
			price:    100,
			expected: models.TrendStronglyBearish,
		},
		{
			name:     "negative histogram with positive main line",
			set:      models.IndicatorSet{MACD: f(0.5), MACDSignal: f(2), MACDHist: f(-1.5)},
			price:    100,
			expected: models.TrendBearish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MACDTrend(tt.set, tt.price); got != tt.expected {
				t.Errorf("MACDTrend() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShortTermDirection(t *testing.T) {
	tests := []struct {
		name       string
		shortTrend models.TrendLabel
		macdTrend  models.TrendLabel
		rsi7       *float64
		expected   string
	}{
		{
			name:       "bullish agreement fires long",
			shortTrend: models.TrendBullish,
			macdTrend:  models.TrendStronglyBullish,
			rsi7:       f(50),
			expected:   models.DirectionLong,
		},
		{
			name:       "oversold fast oscillator with bullish trend fires long",
			shortTrend: models.TrendBullish,
			macdTrend:  models.TrendNeutral,
			rsi7:       f(25),
			expected:   models.DirectionLong,
		},
		{
			name:       "bearish agreement fires short",
			shortTrend: models.TrendStronglyBearish,
			macdTrend:  models.TrendBearish,
			rsi7:       f(50),
			expected:   models.DirectionShort,
		},
		{
			name:       "overbought fast oscillator with bearish trend fires short",
			shortTrend: models.TrendBearish,
			macdTrend:  models.TrendNeutral,
			rsi7:       f(75),
			expected:   models.DirectionShort,
		},
		{
			name:       "disagreement stays flat",
			shortTrend: models.TrendBullish,
			macdTrend:  models.TrendBearish,
			rsi7:       f(50),
			expected:   "",
		},
		{
			name:       "neutral everything stays flat",
			shortTrend: models.TrendNeutral,
			macdTrend:  models.TrendNeutral,
			rsi7:       nil,
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortTermDirection(tt.shortTrend, tt.macdTrend, tt.rsi7); got != tt.expected {
				t.Errorf("shortTermDirection() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTechnicalIntradayGate(t *testing.T) {
	set := models.IndicatorSet{
		SMA5: f(95), SMA10: f(90), EMA9: f(96), EMA21: f(92),
		SMA7: f(95), SMA25: f(90), SMA99: f(85),
		RSI7: f(50), RSI14: f(50),
		MACD: f(2), MACDSignal: f(0.4), MACDHist: f(1.6),
	}

	intraday := Technical(set, 100, "15m")
	if intraday.ShortTermDirection != models.DirectionLong {
		t.Errorf("intraday ShortTermDirection = %q, want %q", intraday.ShortTermDirection, models.DirectionLong)
	}

	daily := Technical(set, 100, "1d")
	if daily.ShortTermDirection != "" {
		t.Errorf("daily ShortTermDirection = %q, want empty", daily.ShortTermDirection)
	}
	if daily.Trend != intraday.Trend || daily.Momentum != intraday.Momentum {
		t.Error("interval must only gate the short-horizon signal")
	}
}

func TestTechnicalDegradesOnShortSeries(t *testing.T) {
	// Nothing computable: classification still returns labels instead of
	// failing the request.
	signal := Technical(models.IndicatorSet{}, 100, "1h")

	if signal.Momentum != models.MomentumNeutral {
		t.Errorf("Momentum = %v, want neutral", signal.Momentum)
	}
	if signal.MACDTrend != models.TrendNeutral {
		t.Errorf("MACDTrend = %v, want neutral", signal.MACDTrend)
	}
	// The zero-baseline coercion surfaces here: everything missing reads
	// as strongly bullish for a positive price.
	if signal.Trend != models.TrendStronglyBullish {
		t.Errorf("Trend = %v, want strongly bullish via zero baseline", signal.Trend)
	}
}
