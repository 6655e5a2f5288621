package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/storage"
)

var ErrQuoteNotFound = errors.New("quote not found")

// Likes is the liked-quote ID set kept under likedQuotes
type Likes struct {
	mu    sync.Mutex
	store storage.Provider
}

func NewLikes(store storage.Provider) *Likes {
	return &Likes{store: store}
}

func (l *Likes) load() ([]string, error) {
	data, err := l.store.Get(constants.KeyLikedQuotes)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", constants.KeyLikedQuotes, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn("Corrupt persisted state, resetting to defaults", "key", constants.KeyLikedQuotes, "error", err)
		if err := l.save([]string{}); err != nil {
			return nil, err
		}
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (l *Likes) save(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := l.store.Set(constants.KeyLikedQuotes, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.KeyLikedQuotes, err)
	}
	return nil
}

// Toggle likes id, or unlikes it if already liked. It returns the new state.
func (l *Likes) Toggle(id string) (bool, error) {
	if _, ok := Lookup(id); !ok {
		return false, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load()
	if err != nil {
		return false, err
	}

	next := make([]string, 0, len(ids)+1)
	liked := true
	for _, v := range ids {
		if v == id {
			liked = false
			continue
		}
		next = append(next, v)
	}
	if liked {
		next = append(next, id)
	}

	if err := l.save(next); err != nil {
		return false, err
	}
	return liked, nil
}

// IsLiked reports whether id is in the liked set
func (l *Likes) IsLiked(id string) (bool, error) {
	ids, err := l.List()
	if err != nil {
		return false, err
	}
	for _, v := range ids {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

// List returns liked quote IDs in the order they were liked
func (l *Likes) List() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}
