package sentiment

import "github.com/Alias1177/Pulse/models"

// Normalize maps the composite 0-100 index onto its categorical label.
// Bands are fixed and non-overlapping; the upper bound of each band is
// inclusive. Values outside 0-100 are clamped into range first.
func Normalize(value int) models.SentimentLabel {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	switch {
	case value <= 25:
		return models.SentimentExtremelyBearish
	case value <= 45:
		return models.SentimentBearish
	case value <= 55:
		return models.SentimentNeutral
	case value <= 75:
		return models.SentimentBullish
	default:
		return models.SentimentExtremelyBullish
	}
}

// Interpretation returns the reading phrase for a label. It is a pure 1:1
// mapping with no branching beyond the label itself.
func Interpretation(label models.SentimentLabel) string {
	switch label {
	case models.SentimentExtremelyBearish:
		return "Extreme fear in the market, historically a contrarian buying zone"
	case models.SentimentBearish:
		return "Fear dominates, sellers are in control"
	case models.SentimentNeutral:
		return "Market sentiment is balanced"
	case models.SentimentBullish:
		return "Greed is building, buyers are in control"
	case models.SentimentExtremelyBullish:
		return "Extreme greed in the market, historically a local-top zone"
	default:
		return "Unknown sentiment"
	}
}
