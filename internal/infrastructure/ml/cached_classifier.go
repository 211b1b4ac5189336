package ml

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/model"
	"github.com/samilasagitarahman/Resiko-Keterlambatan-Pembayaran-Kredit/internal/domain/port"
)

// CachedClassifier memoises probabilities per feature vector. The wrapped
// classifier must be deterministic.
type CachedClassifier struct {
	next  port.Classifier
	cache *lru.Cache[model.FeatureVector, float64]
}

// NewCachedClassifier wraps next with an LRU cache of the given size.
func NewCachedClassifier(next port.Classifier, size int) (*CachedClassifier, error) {
	cache, err := lru.New[model.FeatureVector, float64](size)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}
	return &CachedClassifier{next: next, cache: cache}, nil
}

// PredictProba returns the cached probability or computes and stores it.
func (c *CachedClassifier) PredictProba(ctx context.Context, features model.FeatureVector) (float64, error) {
	if p, ok := c.cache.Get(features); ok {
		return p, nil
	}
	p, err := c.next.PredictProba(ctx, features)
	if err != nil {
		return 0, err
	}
	c.cache.Add(features, p)
	return p, nil
}

// Len returns the number of cached entries.
func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}
