package models

import (
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
)

// ProgressEntry is a single day's record for a habit, keyed by (habit ID, date)
type ProgressEntry struct {
	Completed            bool   `json:"completed"`
	CompletionPercentage int    `json:"completionPercentage"`
	Notes                string `json:"notes,omitempty"`
	Timestamp            int64  `json:"timestamp"` // unix milliseconds of the last write
	JournalEntry         string `json:"journalEntry,omitempty"`
	Points               *int   `json:"points,omitempty"`
	Mood                 *int   `json:"mood,omitempty"`
}

// Percentage returns the completion percentage clamped to 0-100.
// Writes are not validated, so every reader goes through this.
func (e ProgressEntry) Percentage() int {
	return clamp(e.CompletionPercentage, constants.MinPercentage, constants.MaxPercentage)
}

// PointValue returns the journal points clamped to 0-10, or 0 when unset.
func (e ProgressEntry) PointValue() int {
	if e.Points == nil {
		return constants.DefaultPoints
	}
	return clamp(*e.Points, constants.MinPoints, constants.MaxPoints)
}

// MoodValue returns the mood clamped to 1-5, or the neutral mood when unset.
func (e ProgressEntry) MoodValue() int {
	if e.Mood == nil {
		return constants.DefaultMood
	}
	return clamp(*e.Mood, constants.MinMood, constants.MaxMood)
}

// HasJournal reports whether a reflection was written for the day
func (e ProgressEntry) HasJournal() bool {
	return e.JournalEntry != ""
}

// WrittenAt returns the last-write time in loc
func (e ProgressEntry) WrittenAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(e.Timestamp).In(loc)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
