package cache

import (
	"context"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/metrics"
	"github.com/modfence/modfence/pkg/moderation"
)

// CachedAnalyzer decorates a classification backend with a ResultCache.
// Backend errors are never cached.
type CachedAnalyzer struct {
	inner moderation.Analyzer
	cache ResultCache
}

func NewCachedAnalyzer(inner moderation.Analyzer, cache ResultCache) *CachedAnalyzer {
	return &CachedAnalyzer{inner: inner, cache: cache}
}

func (a *CachedAnalyzer) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	content := []byte(text)
	if result, ok := a.cache.Get(ctx, domain.KindText, content); ok {
		metrics.CacheHitsTotal.WithLabelValues(string(domain.KindText)).Inc()
		return result, nil
	}

	result, err := a.inner.AnalyzeText(ctx, text)
	if err != nil {
		return nil, err
	}
	a.cache.Set(ctx, domain.KindText, content, result)
	return result, nil
}

func (a *CachedAnalyzer) AnalyzeImage(ctx context.Context, image []byte) (*domain.AnalysisResult, error) {
	if result, ok := a.cache.Get(ctx, domain.KindImage, image); ok {
		metrics.CacheHitsTotal.WithLabelValues(string(domain.KindImage)).Inc()
		return result, nil
	}

	result, err := a.inner.AnalyzeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	a.cache.Set(ctx, domain.KindImage, image, result)
	return result, nil
}
