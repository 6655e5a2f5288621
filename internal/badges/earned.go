package badges

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/storage"
)

// EarnedStore is the append-only set of earned badge IDs kept under earnedBadges
type EarnedStore struct {
	mu    sync.Mutex
	store storage.Provider
}

func NewEarnedStore(store storage.Provider) *EarnedStore {
	return &EarnedStore{store: store}
}

// IDs returns earned badge IDs in the order they were earned. Corrupt
// data resets the set to empty.
func (e *EarnedStore) IDs() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load()
}

func (e *EarnedStore) load() ([]string, error) {
	data, err := e.store.Get(constants.KeyEarnedBadges)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", constants.KeyEarnedBadges, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn("Corrupt persisted state, resetting to defaults", "key", constants.KeyEarnedBadges, "error", err)
		if err := e.save([]string{}); err != nil {
			return nil, err
		}
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (e *EarnedStore) save(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := e.store.Set(constants.KeyEarnedBadges, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.KeyEarnedBadges, err)
	}
	return nil
}

// Add unions ids into the earned set and returns those that were new.
// Earned badges are never removed.
func (e *EarnedStore) Add(ids ...string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.load()
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(current))
	for _, id := range current {
		have[id] = true
	}

	var added []string
	for _, id := range ids {
		if have[id] {
			continue
		}
		have[id] = true
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := e.save(append(current, added...)); err != nil {
		return nil, err
	}
	return added, nil
}
