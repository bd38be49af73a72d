package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"arcadia-quote-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ContentLoader fetches the localized content tree from a backing store
// (e.g., document DB or CMS export).
type ContentLoader interface {
	LoadContent(ctx context.Context, language string) (domain.QuoteContent, error)
}

// ContentRepository caches the full content document per language in Redis
// and falls back to a loader on cache miss. The tree is always consumed
// whole, so it is cached as one JSON value:
// SET quote:content:{language} {json}
type ContentRepository struct {
	client *redis.Client
	loader ContentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContentRepository(client *redis.Client, loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ContentRepository) GetContent(ctx context.Context, language string) (domain.QuoteContent, error) {
	key := r.contentKey(language)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		if content, ok := decodeContent(raw); ok {
			return content, nil
		}
	}

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			if content, ok := decodeContent(raw); ok {
				return content, nil
			}
		}

		content, err := r.loader.LoadContent(ctx, language)
		if err != nil {
			return domain.QuoteContent{}, err
		}

		if raw, err := json.Marshal(content); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return content, nil
	})
	if err != nil {
		return domain.QuoteContent{}, err
	}
	return result.(domain.QuoteContent), nil
}

func (r *ContentRepository) contentKey(language string) string {
	return "quote:content:" + language
}

// decodeContent tolerates a corrupt cache entry by reporting a miss.
func decodeContent(raw []byte) (domain.QuoteContent, bool) {
	var content domain.QuoteContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.QuoteContent{}, false
	}
	return content, true
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
