package models

import "context"

// PriceSource supplies historical candles and live quotes for a symbol.
type PriceSource interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// SentimentSource supplies the composite 0-100 sentiment index.
type SentimentSource interface {
	GetIndex(ctx context.Context) (SentimentReading, error)
}
