package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
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
	"github.com/Alias1177/Pulse/internal/stream"
	"github.com/Alias1177/Pulse/models"
)

// resynthesizeEvery is how often the watcher re-runs the full synthesis.
// Live ticks only refresh the observed price between runs.
const resynthesizeEvery = 5 * time.Minute

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prices := binance.NewClient(binance.ClientOptions{
		BaseURL:        cfg.BinanceBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	sentiments := feargreed.NewClient(feargreed.ClientOptions{
		BaseURL:        cfg.FearGreedBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	eng := engine.New(prices, sentiments, cfg.CandleCount)

	var db *database.DB
	if cfg.DBPassword != "" {
		db, err = database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Error().Err(err).Msg("Database unavailable, running without persistence")
			db = nil
		} else {
			defer db.Close()
		}
	}

	var tg *notifier.Telegram
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err = notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("Telegram unavailable, running without delivery")
			tg = nil
		}
	}

	events := make(chan models.MarketEvent, 256)
	feed := stream.New([]string{cfg.Symbol}, cfg.StreamMaxRetries)

	go func() {
		if err := feed.Run(ctx, events); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Market feed stopped")
			stop()
		}
	}()

	ticker := time.NewTicker(resynthesizeEvery)
	defer ticker.Stop()

	log.Info().Str("symbol", cfg.Symbol).Str("interval", cfg.Interval).Msg("Watcher started")
	synthesize(ctx, eng, cfg, db, tg)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Watcher shutting down")
			return
		case event := <-events:
			log.Debug().
				Str("symbol", event.Symbol).
				Float64("price", event.Price).
				Str("feed_state", string(feed.State())).
				Msg("Tick")
		case <-ticker.C:
			synthesize(ctx, eng, cfg, db, tg)
		}
	}
}

func synthesize(ctx context.Context, eng *engine.Engine, cfg *config.Config, db *database.DB, tg *notifier.Telegram) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	rec, err := eng.Synthesize(runCtx, cfg.Symbol, cfg.Interval)
	if err != nil {
		log.Error().Err(err).Msg("Synthesis failed")
		return
	}

	if db != nil {
		if err := db.SaveRecommendation(rec); err != nil {
			log.Error().Err(err).Msg("Failed to persist recommendation")
		}
	}
	if tg != nil {
		if err := tg.Send(rec); err != nil {
			log.Error().Err(err).Msg("Failed to deliver recommendation")
		}
	}
}
