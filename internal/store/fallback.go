package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
)

// FallbackStore writes through a primary store and degrades to a
// process-local fallback when the primary is unreachable. Reads try the
// primary first so a recovered backend wins over stale local copies.
type FallbackStore struct {
	primary  Store
	fallback Store
	log      *zap.SugaredLogger
}

// NewFallbackStore creates a fallback-wrapped store
func NewFallbackStore(primary, fallback Store, log *zap.SugaredLogger) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback, log: log}
}

// Put writes to the primary, falling back to the local store on failure
func (s *FallbackStore) Put(ctx context.Context, result *model.FactCheckResult) error {
	if err := s.primary.Put(ctx, result); err != nil {
		s.log.Warnw("primary store write failed, using fallback", "requestID", result.RequestID, "error", err)
		return s.fallback.Put(ctx, result)
	}
	return nil
}

// Get reads from the primary, consulting the fallback when the primary
// errors or has no record
func (s *FallbackStore) Get(ctx context.Context, requestID string) (*model.FactCheckResult, error) {
	result, err := s.primary.Get(ctx, requestID)
	if err == nil {
		return result, nil
	}
	if err != ErrNotFound {
		s.log.Warnw("primary store read failed, using fallback", "requestID", requestID, "error", err)
	}

	return s.fallback.Get(ctx, requestID)
}
