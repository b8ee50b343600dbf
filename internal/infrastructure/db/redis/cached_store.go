package redis

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/usercore/user-directory/internal/api/metrics"
	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

const usersCollection = "users"

// userCache abstracts the cache backend so the decorator can be exercised
// without a live Redis instance.
type userCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, u *domain.User) error
}

// CachedStore decorates a ports.Store with a Redis read-through cache for
// single-field id lookups on the users collection. All other queries pass
// straight through. Cache faults never fail the operation; the store remains
// the source of truth.
type CachedStore struct {
	inner ports.Store
	cache userCache
	log   zerolog.Logger
}

func NewCachedStore(inner ports.Store, cache userCache, log zerolog.Logger) *CachedStore {
	return &CachedStore{inner: inner, cache: cache, log: log}
}

func (s *CachedStore) FindOne(ctx context.Context, collection string, query ports.Document) (*domain.User, error) {
	id, cacheable := cacheKey(collection, query)
	if cacheable {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("id", id).Msg("cache lookup failed, falling through to store")
		} else if cached != nil {
			metrics.CacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := s.inner.FindOne(ctx, collection, query)
	if err != nil {
		if errors.Is(err, domain.ErrStorageFailure) {
			metrics.StorageErrorsTotal.WithLabelValues("find_one").Inc()
		}
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("id", user.ID).Msg("failed to populate cache")
		}
	}
	return user, nil
}

func (s *CachedStore) Insert(ctx context.Context, collection string, data ports.Document) (*domain.User, error) {
	user, err := s.inner.Insert(ctx, collection, data)
	if err != nil {
		if errors.Is(err, domain.ErrStorageFailure) {
			metrics.StorageErrorsTotal.WithLabelValues("insert").Inc()
		}
		return nil, err
	}

	if collection == usersCollection && user.ID != "" {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("id", user.ID).Msg("failed to populate cache")
		}
	}
	return user, nil
}

// cacheKey reports whether a query is servable from cache: a pure id lookup
// on the users collection.
func cacheKey(collection string, query ports.Document) (string, bool) {
	if collection != usersCollection || len(query) != 1 {
		return "", false
	}
	id, ok := query["id"].(string)
	return id, ok && id != ""
}
