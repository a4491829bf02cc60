package scholarship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"scholar-ai/internal/apperr"
)

// scrapeCacheKey holds the last scrape payload so repeated triggers
// don't hammer the source sites within the TTL.
const scrapeCacheKey = "scholar:scrape:latest"

// Service owns the scholarship catalog: scraped records persisted via
// gorm, a redis-backed scrape cache, and a read path that falls back to
// the external scholarship API when the local catalog is empty.
type Service struct {
	db       *gorm.DB
	rdb      *redis.Client
	apiURL   string
	cacheTTL time.Duration
	client   *http.Client
}

func NewService(db *gorm.DB, rdb *redis.Client, apiURL string, cacheTTL time.Duration) *Service {
	return &Service{
		db:       db,
		rdb:      rdb,
		apiURL:   apiURL,
		cacheTTL: cacheTTL,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

// CachedScrape returns the last scrape payload if it is still fresh.
func (s *Service) CachedScrape(ctx context.Context) ([]Scholarship, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, scrapeCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var cached []Scholarship
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return cached, true
}

// StoreScrape replaces the catalog with the scrape results and caches
// the payload. Cache failures are soft; catalog failures are not.
func (s *Service) StoreScrape(ctx context.Context, results []Scholarship) error {
	if s.db != nil {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&Scholarship{}).Error; err != nil {
				return err
			}
			if len(results) == 0 {
				return nil
			}
			return tx.Create(&results).Error
		})
		if err != nil {
			return fmt.Errorf("%w: failed to persist catalog: %v", apperr.ErrIntegration, err)
		}
	}

	if s.rdb != nil {
		raw, err := json.Marshal(results)
		if err == nil {
			if err := s.rdb.Set(ctx, scrapeCacheKey, raw, s.cacheTTL).Err(); err != nil {
				log.Printf("[Scholarship] scrape cache write failed: %v", err)
			}
		}
	}
	return nil
}

// All serves the catalog. An empty local catalog falls back to one GET
// against the external scholarship API.
func (s *Service) All(ctx context.Context) ([]Scholarship, error) {
	if s.db != nil {
		var records []Scholarship
		if err := s.db.WithContext(ctx).Find(&records).Error; err == nil && len(records) > 0 {
			return records, nil
		}
	}
	return s.fetchExternal(ctx)
}

func (s *Service) fetchExternal(ctx context.Context) ([]Scholarship, error) {
	if s.apiURL == "" {
		return nil, fmt.Errorf("%w: scholarship API URL not configured and catalog is empty", apperr.ErrConfiguration)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build scholarship API request: %v", apperr.ErrIntegration, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: scholarship API call exceeded deadline", apperr.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: scholarship API unreachable: %v", apperr.ErrIntegration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: scholarship API returned status %d", apperr.ErrIntegration, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read scholarship API response: %v", apperr.ErrIntegration, err)
	}
	return decodeScholarships(body)
}

// decodeScholarships accepts a bare array or a {"data":[...]} wrapper.
func decodeScholarships(body []byte) ([]Scholarship, error) {
	var arr []Scholarship
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}
	var wrapped struct {
		Data []Scholarship `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("%w: scholarship API returned unexpected format", apperr.ErrFormat)
}
