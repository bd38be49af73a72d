package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"arcadia-quote-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ContentLoader fetches the localized content tree from a backing store
// (e.g., document DB or CMS export).
type ContentLoader interface {
	LoadContent(ctx context.Context, language string) (domain.QuoteContent, error)
}

// ContentRepository caches per-language content with TTL to avoid repeated
// backing-store hits.
type ContentRepository struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedContent
}

type cachedContent struct {
	content   domain.QuoteContent
	expiresAt time.Time
}

func NewContentRepository(loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedContent),
	}
}

func (r *ContentRepository) GetContent(ctx context.Context, language string) (domain.QuoteContent, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[language]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.content, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[language]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.content, nil
		}
		r.mu.RUnlock()

		content, err := r.loader.LoadContent(ctx, language)
		if err != nil {
			return domain.QuoteContent{}, err
		}

		r.mu.Lock()
		r.cache[language] = cachedContent{
			content:   content,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return content, nil
	})
	if err != nil {
		return domain.QuoteContent{}, err
	}
	return result.(domain.QuoteContent), nil
}

// StaticContentLoader is a simple loader backed by an in-memory map
// (useful for tests/demos).
type StaticContentLoader struct {
	content map[string]domain.QuoteContent
}

func NewStaticContentLoader(content map[string]domain.QuoteContent) *StaticContentLoader {
	return &StaticContentLoader{content: content}
}

func (l *StaticContentLoader) LoadContent(_ context.Context, language string) (domain.QuoteContent, error) {
	if content, ok := l.content[language]; ok {
		return content, nil
	}
	return domain.QuoteContent{}, domain.ErrContentNotFound
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
