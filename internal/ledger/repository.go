package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/storage"
)

// Repository loads and saves the whole ledger state
type Repository interface {
	Load() (State, error)
	Save(State) error
}

// StoreRepository keeps the state as the habit-storage blob of a storage.Provider
type StoreRepository struct {
	store storage.Provider
}

func NewStoreRepository(store storage.Provider) *StoreRepository {
	return &StoreRepository{store: store}
}

// Load returns the stored state. A missing key yields an empty state; an
// undecodable one is logged, reset to empty and never returned as an error.
func (r *StoreRepository) Load() (State, error) {
	data, err := r.store.Get(constants.KeyHabitStorage)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return NewState(), nil
		}
		return State{}, fmt.Errorf("failed to read %s: %w", constants.KeyHabitStorage, err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Corrupt persisted state, resetting to defaults", "key", constants.KeyHabitStorage, "error", err)
		fresh := NewState()
		if err := r.Save(fresh); err != nil {
			return State{}, err
		}
		return fresh, nil
	}
	return Normalize(s), nil
}

func (r *StoreRepository) Save(s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", constants.KeyHabitStorage, err)
	}
	if err := r.store.Set(constants.KeyHabitStorage, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.KeyHabitStorage, err)
	}
	return nil
}

// MemoryRepository holds the state in memory without touching storage
type MemoryRepository struct {
	mu    sync.Mutex
	state State
	saves int
}

func NewMemoryRepository(initial State) *MemoryRepository {
	return &MemoryRepository{state: Normalize(initial).Clone()}
}

func (r *MemoryRepository) Load() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone(), nil
}

func (r *MemoryRepository) Save(s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s.Clone()
	r.saves++
	return nil
}

// Saves reports how many times Save was called
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
