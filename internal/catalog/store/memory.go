package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"catalog/internal/catalog/models"
)

// InMemory keeps the dependency-free implementation lightweight and testable.
// It intentionally favors clarity over performance: uniqueness lookups scan
// the map instead of maintaining secondary indexes.
type InMemory struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[string]models.Item)}
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.items[id]; ok {
		return clone(item), nil
	}
	return nil, ErrNotFound
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Name == name {
			return clone(item), nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) FindByCode(_ context.Context, code string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Code == code {
			return clone(item), nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) Find(_ context.Context, filter models.Filter) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Item
	for _, item := range s.items {
		if matches(item, filter) {
			out = append(out, clone(item))
		}
	}
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, item *models.Item) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return item.ID, nil
}

func (s *InMemory) ReplaceByID(_ context.Context, id string, item *models.Item) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Full replace: the candidate's fields win wholesale, only identity,
	// version, and creation time survive from the stored document.
	next := *item
	next.ID = id
	next.Version = stored.Version + 1
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = time.Now()
	s.items[id] = next
	return clone(next), nil
}

func (s *InMemory) DeleteByID(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func matches(item models.Item, filter models.Filter) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if len(filter.Tags) > 0 {
		tagged := false
		for _, want := range filter.Tags {
			for _, have := range item.Tags {
				if want == have {
					tagged = true
				}
			}
		}
		if !tagged {
			return false
		}
	}
	return true
}

// clone returns a defensive copy so callers can't mutate stored state
// through returned pointers.
func clone(item models.Item) *models.Item {
	out := item
	out.Tags = append([]models.Tag(nil), item.Tags...)
	out.Contributors = append([]models.Contributor(nil), item.Contributors...)
	return &out
}
