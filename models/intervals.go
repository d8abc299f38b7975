package models

// Supported kline intervals, Binance notation.
var SupportedIntervals = []string{
	"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "1d",
}

// IsIntraday reports whether an interval is short enough for the
// short-horizon directional signal to apply.
func IsIntraday(interval string) bool {
	switch interval {
	case "1m", "3m", "5m", "15m", "30m", "1h":
		return true
	}
	return false
}

// IsSupportedInterval reports whether the interval is one we fetch.
func IsSupportedInterval(interval string) bool {
	for _, i := range SupportedIntervals {
		if i == interval {
			return true
		}
	}
	return false
}
