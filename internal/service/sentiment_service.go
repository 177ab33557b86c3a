package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/engine"
	"github.com/orchids/social-analytics/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type SentimentAnalysis struct {
	Overall domain.SentimentResult
	Brands  map[string]domain.BrandSentiment
}

// SentimentService caches text analyses so repeated requests for the
// same caption do not re-hit the summarization collaborator.
type SentimentService struct {
	sentiment *engine.SentimentEngine
	redis     *redis.Client
	log       *logger.Logger
	ttl       time.Duration
}

func NewSentimentService(sentiment *engine.SentimentEngine, redisClient *redis.Client, log *logger.Logger, ttl time.Duration) *SentimentService {
	return &SentimentService{
		sentiment: sentiment,
		redis:     redisClient,
		log:       log,
		ttl:       ttl,
	}
}

func (s *SentimentService) Analyze(ctx context.Context, text string, brands []string) SentimentAnalysis {
	cacheKey := sentimentCacheKey(text, brands)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var analysis SentimentAnalysis
			if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
				return analysis
			}
		}
	}

	analysis := SentimentAnalysis{
		Overall: s.sentiment.Analyze(ctx, text),
		Brands:  s.sentiment.AnalyzeBrands(ctx, text, brands),
	}

	if s.redis != nil {
		if payload, err := json.Marshal(analysis); err == nil {
			s.redis.Set(ctx, cacheKey, payload, s.ttl)
		}
	}

	return analysis
}

func sentimentCacheKey(text string, brands []string) string {
	sorted := make([]string, len(brands))
	copy(sorted, brands)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(text + "|" + strings.Join(sorted, ",")))
	return fmt.Sprintf("analytics:sentiment:%s", hex.EncodeToString(sum[:16]))
}
