package indicators

import (
	"github.com/Alias1177/Pulse/models"
)

// MACD periods. Changing these silently shifts every classification
// threshold downstream, so they are fixed here rather than configurable.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	macdSignalPad    = 8
)

// SMA computes the simple moving average of the last period closes.
// Returns ok=false when the series is shorter than the period; a truncated
// partial average is never produced.
func SMA(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), true
}

// EMAFullHistory computes an exponential moving average seeded with the
// first close and iterated over the entire series, not just the last
// period points. The full-history sensitivity is an output-compatibility
// contract: results feed fixed classification thresholds and must not be
// "corrected" to a windowed EMA.
func EMAFullHistory(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	k := 2.0 / float64(period+1)
	ema := closes[0]
	for i := 1; i < len(closes); i++ {
		ema = closes[i]*k + ema*(1-k)
	}
	return ema, true
}

// RSI computes the relative strength index over the last period deltas:
// average gain divided by average loss, scaled to 0-100. When the average
// loss over the window is exactly zero the oscillator is defined as 100.
// Needs more than period closes.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) <= period {
		return 0, false
	}
	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100.0, true
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), true
}

// MACD computes the momentum-convergence oscillator: main line is
// EMA(12)-EMA(26) over the full series, histogram is main minus signal.
// The signal line is a 9-period EMA seeded on a zero-padded prefix of
// length 8 followed by the single current main-line value, so it sees only
// one true input point. Needs at least 26 closes.
func MACD(closes []float64) (main, signal, hist float64, ok bool) {
	if len(closes) < macdSlowPeriod {
		return 0, 0, 0, false
	}
	fast, _ := EMAFullHistory(closes, macdFastPeriod)
	slow, _ := EMAFullHistory(closes, macdSlowPeriod)
	main = fast - slow

	seed := make([]float64, macdSignalPad+1)
	seed[macdSignalPad] = main
	signal, _ = EMAFullHistory(seed, macdSignalPeriod)

	hist = main - signal
	return main, signal, hist, true
}

// HorizonSet selects which indicator families Compute fills in.
type HorizonSet struct {
	Position  bool // MA7/25/99 for the position trend classifier
	ShortTerm bool // MA5/10, EMA9/21 and RSI7 for the intraday classifier
}

// AllHorizons computes everything.
var AllHorizons = HorizonSet{Position: true, ShortTerm: true}

// Compute fills an IndicatorSet from the series. Each indicator is computed
// independently: one coming up short never blocks the others, the field is
// simply left nil.
func Compute(series models.PriceSeries, horizons HorizonSet) models.IndicatorSet {
	var set models.IndicatorSet
	closes := series.Closes

	if horizons.Position {
		set.SMA7 = opt(SMA(closes, 7))
		set.SMA25 = opt(SMA(closes, 25))
		set.SMA99 = opt(SMA(closes, 99))
	}
	if horizons.ShortTerm {
		set.SMA5 = opt(SMA(closes, 5))
		set.SMA10 = opt(SMA(closes, 10))
		set.EMA9 = opt(EMAFullHistory(closes, 9))
		set.EMA21 = opt(EMAFullHistory(closes, 21))
		set.RSI7 = opt(RSI(closes, 7))
	}

	set.RSI14 = opt(RSI(closes, 14))

	if main, signal, hist, ok := MACD(closes); ok {
		set.MACD = &main
		set.MACDSignal = &signal
		set.MACDHist = &hist
	}

	return set
}

func opt(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
