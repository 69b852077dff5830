// ABOUTME: Favorites store of exercises the user has starred.
// ABOUTME: Matches entries by id or name and keeps the newest favorite first.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aurofit/internal/kv"
	"github.com/harperreed/aurofit/internal/models"
)

// ErrInvalidExercise is returned for an exercise with neither an id nor a name.
var ErrInvalidExercise = errors.New("exercise needs an id or name")

// Store persists the favorites list under a single key.
type Store struct {
	items  *kv.Collection[models.Exercise]
	logger *log.Logger
}

// New creates a favorites store over store.
func New(store kv.Store, logger *log.Logger) *Store {
	return &Store{
		items:  kv.NewCollection[models.Exercise](store, kv.KeyFavorites),
		logger: logger,
	}
}

// List returns every favorite, newest first. Read failures yield an empty list.
func (s *Store) List(ctx context.Context) []models.Exercise {
	items, err := s.items.Load(ctx)
	if err != nil {
		s.logger.Warn("reading favorites", "err", err)
		return []models.Exercise{}
	}
	if items == nil {
		return []models.Exercise{}
	}
	return items
}

// IsFavorite reports whether any favorite has idOrName as its id or name.
func (s *Store) IsFavorite(ctx context.Context, idOrName string) bool {
	return contains(s.List(ctx), idOrName)
}

// Add prepends item unless a favorite already shares its id or name.
func (s *Store) Add(ctx context.Context, item models.Exercise) error {
	if item.ID == "" && item.Name == "" {
		return ErrInvalidExercise
	}
	_, err := s.items.Update(ctx, func(items []models.Exercise) ([]models.Exercise, error) {
		if contains(items, item.ID) || contains(items, item.Name) {
			return nil, kv.ErrNoChange
		}
		return append([]models.Exercise{item}, items...), nil
	})
	if err != nil {
		return fmt.Errorf("add favorite %q: %w", item.Name, err)
	}
	return nil
}

// Remove drops every favorite whose id or name equals idOrName.
func (s *Store) Remove(ctx context.Context, idOrName string) error {
	return s.removeAll(ctx, idOrName)
}

// Toggle removes item if it is a favorite by id or name, otherwise adds it.
// It returns whether item is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, item models.Exercise) (bool, error) {
	if item.ID == "" && item.Name == "" {
		return false, ErrInvalidExercise
	}
	added := false
	_, err := s.items.Update(ctx, func(items []models.Exercise) ([]models.Exercise, error) {
		if contains(items, item.ID) || contains(items, item.Name) {
			return without(items, item.ID, item.Name), nil
		}
		added = true
		return append([]models.Exercise{item}, items...), nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite %q: %w", item.Name, err)
	}
	return added, nil
}

func (s *Store) removeAll(ctx context.Context, keys ...string) error {
	_, err := s.items.Update(ctx, func(items []models.Exercise) ([]models.Exercise, error) {
		return without(items, keys...), nil
	})
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func contains(items []models.Exercise, idOrName string) bool {
	if idOrName == "" {
		return false
	}
	for _, it := range items {
		if it.Matches(idOrName) {
			return true
		}
	}
	return false
}

func without(items []models.Exercise, keys ...string) []models.Exercise {
	out := make([]models.Exercise, 0, len(items))
	for _, it := range items {
		drop := false
		for _, k := range keys {
			if k != "" && it.Matches(k) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, it)
		}
	}
	return out
}
