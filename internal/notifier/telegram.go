package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Pulse/internal/sentiment"
	"github.com/Alias1177/Pulse/models"
)

// Telegram delivers recommendations to a fixed chat. It only sends; no
// conversational features.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a Telegram notifier
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "notifier").Logger(),
	}, nil
}

// Send formats and delivers one recommendation
func (t *Telegram) Send(rec models.Recommendation) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatRecommendation(rec))
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error().Err(err).Str("id", rec.ID).Msg("Failed to deliver recommendation")
		return fmt.Errorf("sending telegram message: %w", err)
	}
	t.logger.Info().Str("id", rec.ID).Msg("Recommendation delivered")
	return nil
}

// FormatRecommendation renders a recommendation as a plain-text message
func FormatRecommendation(rec models.Recommendation) string {
	arrow := "📈"
	if rec.Direction == models.DirectionShort {
		arrow = "📉"
	}

	return fmt.Sprintf(
		"%s %s %s\n"+
			"Direction: %s (confidence: %s)\n"+
			"Horizon: %s\n"+
			"Technical: %s | Sentiment: %s\n"+
			"%s\n"+
			"Produced: %s",
		arrow, rec.Symbol, rec.Interval,
		rec.Direction, rec.Confidence,
		rec.Horizon,
		rec.TechnicalDirection, rec.SentimentDirection,
		sentiment.Interpretation(rec.SentimentLabel),
		rec.ProducedAt.Format("2006-01-02 15:04:05 MST"),
	)
}
