package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arcadia-quote-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentLoader loads per-language quote content JSONB from Postgres.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadContent(ctx context.Context, language string) (domain.QuoteContent, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quote_content WHERE language=$1`, language).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuoteContent{}, domain.ErrContentNotFound
	}
	if err != nil {
		return domain.QuoteContent{}, fmt.Errorf("load content: %w", err)
	}
	var content domain.QuoteContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.QuoteContent{}, fmt.Errorf("unmarshal content: %w", err)
	}
	content.Language = language
	return content, nil
}
