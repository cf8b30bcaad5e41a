// Package store persists fact-check results keyed by request identifier.
package store

import (
	"context"
	"errors"

	"github.com/claimlens/claimlens/internal/model"
)

// ErrNotFound is returned when no record exists for a request identifier
var ErrNotFound = errors.New("result not found")

// Store is the persistence interface for fact-check results. Writes
// overwrite: each key holds exactly one record at a time.
type Store interface {
	Put(ctx context.Context, result *model.FactCheckResult) error
	Get(ctx context.Context, requestID string) (*model.FactCheckResult, error)
}

// Key builds the storage key for a request identifier
func Key(requestID string) string {
	return "claimlens:result:" + requestID
}
