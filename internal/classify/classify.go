package classify

import (
	"math"

	"github.com/Alias1177/Pulse/models"
)

// RSI zone boundaries.
const (
	oversoldThreshold   = 30.0
	overboughtThreshold = 70.0
)

// macdNoiseFloor is the histogram magnitude below which the MACD reading is
// treated as noise, expressed as a fraction of the current price (0.01%).
const macdNoiseFloor = 0.0001

// baseline dereferences an optional moving average for comparison against
// the price. A missing average compares as a zero baseline, which biases
// "price above average" to true whenever data is missing. The tests pin
// that asymmetry; do not change it without updating downstream consumers.
func baseline(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ladder maps three "price above average" booleans to a trend label.
// Priority order matters: the first matching rule wins.
func ladder(aboveShort, aboveMid, aboveLong bool) models.TrendLabel {
	switch {
	case aboveShort && aboveMid && aboveLong:
		return models.TrendStronglyBullish
	case aboveShort && aboveMid:
		return models.TrendBullish
	case !aboveShort && !aboveMid && !aboveLong:
		return models.TrendStronglyBearish
	case !aboveShort && !aboveMid:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// Trend classifies the position trend from the MA7/MA25/MA99 triple.
func Trend(set models.IndicatorSet, currentPrice float64) models.TrendLabel {
	return ladder(
		currentPrice > baseline(set.SMA7),
		currentPrice > baseline(set.SMA25),
		currentPrice > baseline(set.SMA99),
	)
}

// ShortTermTrend classifies the intraday trend from MA5/MA10 plus the
// EMA9/EMA21 cross as the third boolean.
func ShortTermTrend(set models.IndicatorSet, currentPrice float64) models.TrendLabel {
	return ladder(
		currentPrice > baseline(set.SMA5),
		currentPrice > baseline(set.SMA10),
		baseline(set.EMA9) > baseline(set.EMA21),
	)
}

// Momentum classifies an RSI reading into oversold/neutral/overbought.
// A missing reading degrades to neutral.
func Momentum(rsi *float64) models.MomentumSignal {
	if rsi == nil {
		return models.MomentumNeutral
	}
	switch {
	case *rsi <= oversoldThreshold:
		return models.MomentumOversold
	case *rsi >= overboughtThreshold:
		return models.MomentumOverbought
	default:
		return models.MomentumNeutral
	}
}

// MACDTrend classifies the momentum-convergence oscillator. Histogram
// magnitude below 0.01% of the current price reads as neutral; otherwise
// the histogram sign sets the direction and the strongly-* variant applies
// only when the main line's sign agrees.
func MACDTrend(set models.IndicatorSet, currentPrice float64) models.TrendLabel {
	if set.MACD == nil || set.MACDHist == nil {
		return models.TrendNeutral
	}
	hist := *set.MACDHist
	main := *set.MACD

	if math.Abs(hist) < macdNoiseFloor*currentPrice {
		return models.TrendNeutral
	}
	if hist > 0 {
		if main > 0 {
			return models.TrendStronglyBullish
		}
		return models.TrendBullish
	}
	if main < 0 {
		return models.TrendStronglyBearish
	}
	return models.TrendBearish
}

// shortTermDirection derives the intraday entry signal. It fires only when
// the short-term trend and the MACD classification agree on a direction, or
// when the fast oscillator reads an extreme while the short-term trend
// points the opposite recovery way.
func shortTermDirection(shortTrend, macdTrend models.TrendLabel, rsi7 *float64) string {
	bullTrend := shortTrend == models.TrendBullish || shortTrend == models.TrendStronglyBullish
	bearTrend := shortTrend == models.TrendBearish || shortTrend == models.TrendStronglyBearish
	bullMACD := macdTrend == models.TrendBullish || macdTrend == models.TrendStronglyBullish
	bearMACD := macdTrend == models.TrendBearish || macdTrend == models.TrendStronglyBearish

	fast := Momentum(rsi7)

	if (bullTrend && bullMACD) || (fast == models.MomentumOversold && bullTrend) {
		return models.DirectionLong
	}
	if (bearTrend && bearMACD) || (fast == models.MomentumOverbought && bearTrend) {
		return models.DirectionShort
	}
	return ""
}

// Technical runs the full classification for one series. The short-horizon
// direction is only computed for intraday intervals; daily and above leave
// it empty.
func Technical(set models.IndicatorSet, currentPrice float64, interval string) models.TechnicalSignal {
	signal := models.TechnicalSignal{
		Trend:          Trend(set, currentPrice),
		ShortTermTrend: ShortTermTrend(set, currentPrice),
		Momentum:       Momentum(set.RSI14),
		MACDTrend:      MACDTrend(set, currentPrice),
	}
	if models.IsIntraday(interval) {
		signal.ShortTermDirection = shortTermDirection(signal.ShortTermTrend, signal.MACDTrend, set.RSI7)
	}
	return signal
}
