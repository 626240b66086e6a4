package service

import (
	"context"
	"errors"
	"strconv"

	"catalog/internal/catalog/store"
)

// parseVersionToken validates a caller-supplied concurrency token. An empty
// or non-numeric token is rejected; otherwise the parsed non-negative
// version is returned. Tokens are a plain decimal encoding of the version
// counter, exchanged via conditional-request headers or GraphQL arguments.
func parseVersionToken(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}
	version, err := strconv.ParseInt(token, 10, 64)
	if err != nil || version < 0 {
		return 0, false
	}
	return version, true
}

// checkCurrency compares the supplied version against the stored one.
// Writers must present a version at least as new as what they last observed;
// trailing the store means the writer operated on stale data and must
// re-read. Returns nil when the write may proceed, a NotFound or
// StaleVersion result when it may not, and an error for store faults.
func (s *Service) checkCurrency(ctx context.Context, id string, supplied int64) (Result, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NotFound{ID: id}, nil
		}
		return nil, err
	}
	if supplied < current.Version {
		return StaleVersion{ID: id, Supplied: supplied}, nil
	}
	return nil, nil
}
