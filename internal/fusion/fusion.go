package fusion

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alias1177/Pulse/models"
)

// Synthesize reconciles the technical signal with the independent sentiment
// label into one directional recommendation.
//
// The tie-break policy is deliberate and simple: the final direction always
// equals the technical direction. Sentiment is carried through for
// transparency and feeds confidence and horizon, but it never overrides the
// technical call.
func Synthesize(tech models.TechnicalSignal, sentimentLabel models.SentimentLabel) (models.Recommendation, error) {
	if tech.Trend == "" || tech.Momentum == "" {
		return models.Recommendation{}, fmt.Errorf("technical signal incomplete: %w", models.ErrMalformedInput)
	}
	if sentimentLabel == "" {
		return models.Recommendation{}, fmt.Errorf("sentiment label missing: %w", models.ErrMalformedInput)
	}

	techDir := technicalDirection(tech)
	sentDir := sentimentDirection(sentimentLabel)

	// Final call is always the technical one.
	direction := techDir

	horizon := models.HorizonMediumTerm
	if direction == models.DirectionLong && tech.Trend == models.TrendStronglyBullish {
		horizon = models.HorizonLongTerm
	}
	if direction == models.DirectionShort && tech.Trend == models.TrendStronglyBearish {
		horizon = models.HorizonShortTerm
	}

	confidence := models.ConfidenceMedium
	if techDir != sentDir {
		confidence = models.ConfidenceLow
	} else if strongQualifier(tech.Trend, sentimentLabel) {
		confidence = models.ConfidenceHigh
	}

	return models.Recommendation{
		ID:                 uuid.NewString(),
		Direction:          direction,
		Confidence:         confidence,
		Horizon:            horizon,
		TechnicalDirection: techDir,
		SentimentDirection: sentDir,
		SentimentLabel:     sentimentLabel,
		Trend:              tech.Trend,
		ProducedAt:         time.Now().UTC(),
	}, nil
}

// technicalDirection maps trend to a direction, then applies the
// overbought/oversold override. A neutral trend defaults to LONG: neutral
// never yields SHORT on its own.
func technicalDirection(tech models.TechnicalSignal) string {
	dir := models.DirectionLong
	if tech.Trend == models.TrendBearish || tech.Trend == models.TrendStronglyBearish {
		dir = models.DirectionShort
	}

	// An overbought market flips a long call, an oversold one flips a
	// short call. Only the matching combination triggers.
	if tech.Momentum == models.MomentumOverbought && dir == models.DirectionLong {
		dir = models.DirectionShort
	} else if tech.Momentum == models.MomentumOversold && dir == models.DirectionShort {
		dir = models.DirectionLong
	}
	return dir
}

// sentimentDirection maps the sentiment label to a direction. The extreme
// variants flip: extreme greed reads as an overbought market, extreme fear
// as an oversold one. A neutral label defaults to LONG, mirroring the
// technical side's neutral bias.
func sentimentDirection(label models.SentimentLabel) string {
	s := string(label)
	switch {
	case strings.Contains(s, string(models.SentimentBullish)):
		if label == models.SentimentExtremelyBullish {
			return models.DirectionShort
		}
		return models.DirectionLong
	case strings.Contains(s, string(models.SentimentBearish)):
		if label == models.SentimentExtremelyBearish {
			return models.DirectionLong
		}
		return models.DirectionShort
	default:
		return models.DirectionLong
	}
}

// strongQualifier reports whether either side carries a strong/extreme
// variant, which is what upgrades an agreeing pair to high confidence.
func strongQualifier(trend models.TrendLabel, label models.SentimentLabel) bool {
	strongTrend := trend == models.TrendStronglyBullish || trend == models.TrendStronglyBearish
	extremeSentiment := label == models.SentimentExtremelyBullish || label == models.SentimentExtremelyBearish
	return strongTrend || extremeSentiment
}
