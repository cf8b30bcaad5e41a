package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/claimlens/claimlens/internal/model"
)

// MemoryStore is a process-local store used when redis is unavailable.
// Records are lost on process restart; that trade-off is accepted for
// degraded operation.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory store with the given retention window
func NewMemoryStore(retention time.Duration) *MemoryStore {
	if retention == 0 {
		retention = 7 * 24 * time.Hour
	}
	return &MemoryStore{
		cache: gocache.New(retention, 10*time.Minute),
	}
}

// Put overwrites the record for its request identifier
func (s *MemoryStore) Put(_ context.Context, result *model.FactCheckResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	s.cache.SetDefault(Key(result.RequestID), data)
	return nil
}

// Get retrieves the record for a request identifier
func (s *MemoryStore) Get(_ context.Context, requestID string) (*model.FactCheckResult, error) {
	val, found := s.cache.Get(Key(requestID))
	if !found {
		return nil, ErrNotFound
	}

	var result model.FactCheckResult
	if err := json.Unmarshal(val.([]byte), &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	return &result, nil
}
