package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Pulse/config"
	"github.com/Alias1177/Pulse/internal/api/binance"
	"github.com/Alias1177/Pulse/internal/api/feargreed"
	"github.com/Alias1177/Pulse/internal/database"
	"github.com/Alias1177/Pulse/internal/engine"
	"github.com/Alias1177/Pulse/internal/notifier"
	"github.com/Alias1177/Pulse/internal/sentiment"
	"github.com/Alias1177/Pulse/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if !models.IsSupportedInterval(cfg.Interval) {
		log.Fatal().Str("interval", cfg.Interval).Msg("Unsupported interval")
	}

	prices := binance.NewClient(binance.ClientOptions{
		BaseURL:        cfg.BinanceBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	sentiments := feargreed.NewClient(feargreed.ClientOptions{
		BaseURL:        cfg.FearGreedBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	eng := engine.New(prices, sentiments, cfg.CandleCount)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := eng.Synthesize(ctx, cfg.Symbol, cfg.Interval)
	if err != nil {
		log.Fatal().Err(err).Msg("Synthesis failed")
	}

	fmt.Printf("\n===== RECOMMENDATION =====\n")
	fmt.Printf("Symbol:     %s (%s)\n", rec.Symbol, rec.Interval)
	fmt.Printf("Direction:  %s\n", rec.Direction)
	fmt.Printf("Confidence: %s\n", rec.Confidence)
	fmt.Printf("Horizon:    %s\n", rec.Horizon)
	fmt.Printf("Technical:  %s | Sentiment: %s (%s)\n",
		rec.TechnicalDirection, rec.SentimentDirection, rec.SentimentLabel)
	fmt.Printf("Sentiment:  %s\n", sentiment.Interpretation(rec.SentimentLabel))
	fmt.Printf("Produced:   %s\n", rec.ProducedAt.Format("2006-01-02 15:04:05 MST"))

	if cfg.DBPassword != "" {
		db, err := database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Error().Err(err).Msg("Database unavailable, skipping persistence")
		} else {
			defer db.Close()
			if err := db.SaveRecommendation(rec); err != nil {
				log.Error().Err(err).Msg("Failed to persist recommendation")
			}
		}
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("Telegram unavailable, skipping delivery")
		} else if err := tg.Send(rec); err != nil {
			log.Error().Err(err).Msg("Failed to deliver recommendation")
		}
	}
}
