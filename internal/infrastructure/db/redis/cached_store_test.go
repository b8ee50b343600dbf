package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/usercore/user-directory/internal/api/metrics"
	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

type stubCache struct {
	entries map[string]*domain.User
	getErr  error
	setErr  error
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[id], nil
}

func (c *stubCache) Set(_ context.Context, u *domain.User) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[u.ID] = u
	return nil
}

type stubInnerStore struct {
	findCalls int
	user      *domain.User
	err       error
}

func (s *stubInnerStore) FindOne(context.Context, string, ports.Document) (*domain.User, error) {
	s.findCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubInnerStore) Insert(context.Context, string, ports.Document) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestCachedStore_FindOne_CacheHit(t *testing.T) {
	cache := newStubCache()
	cache.entries["u1"] = &domain.User{ID: "u1", Name: "A"}
	inner := &stubInnerStore{}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	user, err := store.FindOne(context.Background(), "users", ports.Document{"id": "u1"})
	if err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if user.Name != "A" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if inner.findCalls != 0 {
		t.Fatalf("expected store not to be hit, got %d calls", inner.findCalls)
	}
}

func TestCachedStore_FindOne_MissPopulatesCache(t *testing.T) {
	cache := newStubCache()
	inner := &stubInnerStore{user: &domain.User{ID: "u1", Name: "A"}}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	if _, err := store.FindOne(context.Background(), "users", ports.Document{"id": "u1"}); err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if inner.findCalls != 1 {
		t.Fatalf("expected one store call, got %d", inner.findCalls)
	}
	if cache.entries["u1"] == nil {
		t.Fatalf("expected cache to be populated")
	}
}

func TestCachedStore_FindOne_NonIDQueryBypassesCache(t *testing.T) {
	cache := newStubCache()
	cache.entries["u1"] = &domain.User{ID: "u1"}
	inner := &stubInnerStore{user: &domain.User{ID: "u1"}}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	queries := []ports.Document{
		{"email": "a@b.com"},
		{"id": "u1", "name": "A"},
		{"id": 42},
	}
	for _, q := range queries {
		if _, err := store.FindOne(context.Background(), "users", q); err != nil {
			t.Fatalf("query %+v: %v", q, err)
		}
	}
	if inner.findCalls != len(queries) {
		t.Fatalf("expected %d store calls, got %d", len(queries), inner.findCalls)
	}
}

func TestCachedStore_FindOne_CacheFaultFallsThrough(t *testing.T) {
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	inner := &stubInnerStore{user: &domain.User{ID: "u1"}}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	user, err := store.FindOne(context.Background(), "users", ports.Document{"id": "u1"})
	if err != nil {
		t.Fatalf("expected fallthrough, got %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestCachedStore_FindOne_AbsentIsNotCached(t *testing.T) {
	cache := newStubCache()
	inner := &stubInnerStore{err: domain.ErrUserNotFound}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	if _, err := store.FindOne(context.Background(), "users", ports.Document{"id": "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if cache.sets != 0 {
		t.Fatalf("expected no cache writes, got %d", cache.sets)
	}
}

func TestCachedStore_StorageFailuresAreCounted(t *testing.T) {
	cache := newStubCache()
	inner := &stubInnerStore{err: fmt.Errorf("%w: connection reset", domain.ErrStorageFailure)}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	findBefore := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("find_one"))
	insertBefore := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("insert"))

	if _, err := store.FindOne(context.Background(), "users", ports.Document{"id": "u1"}); !errors.Is(err, domain.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
	if _, err := store.Insert(context.Background(), "users", ports.Document{"id": "u1"}); !errors.Is(err, domain.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("find_one")); got != findBefore+1 {
		t.Fatalf("expected find_one errors to rise by 1, got %v -> %v", findBefore, got)
	}
	if got := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("insert")); got != insertBefore+1 {
		t.Fatalf("expected insert errors to rise by 1, got %v -> %v", insertBefore, got)
	}
}

func TestCachedStore_AbsenceIsNotCountedAsStorageError(t *testing.T) {
	cache := newStubCache()
	inner := &stubInnerStore{err: domain.ErrUserNotFound}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	before := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("find_one"))
	if _, err := store.FindOne(context.Background(), "users", ports.Document{"id": "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues("find_one")); got != before {
		t.Fatalf("absence must not count as a storage error: %v -> %v", before, got)
	}
}

func TestCachedStore_Insert_PopulatesCache(t *testing.T) {
	cache := newStubCache()
	inner := &stubInnerStore{user: &domain.User{ID: "u1"}}
	store := NewCachedStore(inner, cache, zerolog.Nop())

	if _, err := store.Insert(context.Background(), "users", ports.Document{"id": "u1"}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if cache.entries["u1"] == nil {
		t.Fatalf("expected cache to be populated after insert")
	}
}
