package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Alias1177/Pulse/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS recommendations (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			direction TEXT NOT NULL,
			confidence TEXT NOT NULL,
			horizon TEXT NOT NULL,
			technical_direction TEXT NOT NULL,
			sentiment_direction TEXT NOT NULL,
			sentiment_label TEXT NOT NULL,
			trend TEXT NOT NULL,
			produced_at TIMESTAMP NOT NULL,
			outcome TEXT,
			evaluated_at TIMESTAMP
		)
	`)
	return err
}

// SaveRecommendation stores a freshly produced recommendation
func (db *DB) SaveRecommendation(rec models.Recommendation) error {
	_, err := db.Exec(`
		INSERT INTO recommendations (
			id, symbol, interval, direction, confidence, horizon,
			technical_direction, sentiment_direction, sentiment_label,
			trend, produced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		rec.ID, rec.Symbol, rec.Interval, rec.Direction, rec.Confidence,
		rec.Horizon, rec.TechnicalDirection, rec.SentimentDirection,
		string(rec.SentimentLabel), string(rec.Trend), rec.ProducedAt,
	)
	if err != nil {
		return fmt.Errorf("saving recommendation %s: %w", rec.ID, err)
	}
	return nil
}

// RecordOutcome marks how a recommendation played out (e.g. CORRECT,
// INCORRECT, EXPIRED)
func (db *DB) RecordOutcome(id, outcome string) error {
	result, err := db.Exec(`
		UPDATE recommendations
		SET outcome = $1, evaluated_at = $2
		WHERE id = $3
	`, outcome, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("recording outcome for %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("recommendation %s not found", id)
	}
	return nil
}

// RecentForSymbol returns the latest recommendations for a symbol,
// newest first
func (db *DB) RecentForSymbol(symbol string, limit int) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT id, symbol, interval, direction, confidence, horizon,
			technical_direction, sentiment_direction, sentiment_label,
			trend, produced_at
		FROM recommendations
		WHERE symbol = $1
		ORDER BY produced_at DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations for %s: %w", symbol, err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		var sentimentLabel, trend string
		if err := rows.Scan(
			&rec.ID, &rec.Symbol, &rec.Interval, &rec.Direction,
			&rec.Confidence, &rec.Horizon, &rec.TechnicalDirection,
			&rec.SentimentDirection, &sentimentLabel, &trend, &rec.ProducedAt,
		); err != nil {
			return nil, err
		}
		rec.SentimentLabel = models.SentimentLabel(sentimentLabel)
		rec.Trend = models.TrendLabel(trend)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
