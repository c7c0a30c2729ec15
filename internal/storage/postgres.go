package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"analyzer/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore archives completed analysis results.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// SaveResult upserts one result keyed by URL. The full signal audit trail is
// kept as JSONB so a stored result reproduces the response exactly.
func (s *PostgresStore) SaveResult(ctx context.Context, result *domain.AnalysisResult) error {
	raw, err := json.Marshal(result.Raw)
	if err != nil {
		return fmt.Errorf("marshal raw signals: %w", err)
	}
	highlights, err := json.Marshal(result.Highlights)
	if err != nil {
		return err
	}
	risks, err := json.Marshal(result.Risks)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO analysis_results
		   (url, total, carbon, reputation, location, policy, summary, highlights, risks, raw, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (url) DO UPDATE SET
		   total = EXCLUDED.total, carbon = EXCLUDED.carbon,
		   reputation = EXCLUDED.reputation, location = EXCLUDED.location,
		   policy = EXCLUDED.policy, summary = EXCLUDED.summary,
		   highlights = EXCLUDED.highlights, risks = EXCLUDED.risks,
		   raw = EXCLUDED.raw, analyzed_at = EXCLUDED.analyzed_at`,
		result.URL, result.Total,
		result.Scores.Carbon, result.Scores.Reputation, result.Scores.Location, result.Scores.Policy,
		result.Summary, highlights, risks, raw, result.AnalyzedAt,
	)
	return err
}
