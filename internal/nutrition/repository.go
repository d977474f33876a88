package nutrition

import (
	"context"
	"strings"
	"sync"
)

// Repository is the storage-agnostic food lookup interface. Search matches
// bidirectionally: a food matches when its name appears in the query or the
// query appears in the name, so "현미밥 100g" and "현미" both resolve to
// 현미밥. The bool result distinguishes "not found" from an error.
type Repository interface {
	// Search returns the first matching food in table order.
	Search(ctx context.Context, query string) (*Food, bool, error)

	// List returns all foods in table order.
	List(ctx context.Context) ([]Food, error)

	// Upsert inserts or replaces a food by name.
	Upsert(ctx context.Context, food Food) error

	// Close releases resources held by the repository.
	Close() error
}

// matches reports whether a food name and a query match bidirectionally.
func matches(name, query string) bool {
	return strings.Contains(query, name) || strings.Contains(name, query)
}

// MemoryRepository implements Repository with an in-memory table.
// Thread-safe. Used when no persistent storage is configured and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	foods []Food
}

// NewMemoryRepository creates a memory repository seeded with the built-in
// food table.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{foods: BuiltinFoods()}
}

func (r *MemoryRepository) Search(_ context.Context, query string) (*Food, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.foods {
		if matches(f.Name, query) {
			found := f
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Food, len(r.foods))
	copy(out, r.foods)
	return out, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, food Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.foods {
		if f.Name == food.Name {
			r.foods[i] = food
			return nil
		}
	}
	r.foods = append(r.foods, food)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }

var _ Repository = (*MemoryRepository)(nil)
