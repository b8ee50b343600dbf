package memory

import (
	"context"
	"sync"
	"time"

	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

// Store is an in-memory ports.Store keyed by collection. It backs tests and
// local runs where no MongoDB instance is available.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
}

func NewStore() *Store {
	return &Store{collections: make(map[string][]map[string]any)}
}

func (s *Store) FindOne(_ context.Context, collection string, query ports.Document) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, query) {
			u := domain.UserFromDocument(doc)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) Insert(_ context.Context, collection string, data ports.Document) (*domain.User, error) {
	u := domain.UserFromDocument(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID != "" {
		for _, doc := range s.collections[collection] {
			if doc["id"] == u.ID {
				return nil, domain.ErrUserExists
			}
		}
	}

	s.collections[collection] = append(s.collections[collection], u.Document())
	return &u, nil
}

// matches reports whether doc satisfies every field of query. time.Time
// values are compared with Equal so differing locations still match.
func matches(doc map[string]any, query ports.Document) bool {
	for field, want := range query {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if wt, isTime := want.(time.Time); isTime {
			gt, ok := got.(time.Time)
			if !ok || !wt.Equal(gt) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
