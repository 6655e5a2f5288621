package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ratedzzz/small-steps/internal/backup"
	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/storage"
	"github.com/ratedzzz/small-steps/internal/tracker"
)

type Context struct {
	Store        storage.Provider
	Settings     config.Config
	SettingsPath string

	// Now and Notifier override the clock and badge notifications; tests
	// set them, the binary leaves them nil
	Now      func() time.Time
	Notifier notifier.Sender

	svc *tracker.Service
}

// Tracker returns the service over the loaded store, building it on first use
func (c *Context) Tracker() (*tracker.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	loc, err := c.Settings.Location()
	if err != nil {
		return nil, err
	}

	n := c.Notifier
	if n == nil {
		n = notifier.Nop{}
		if c.Settings.Notifications.Enabled {
			n = notifier.New()
		}
	}

	svc, err := tracker.New(c.Store, tracker.Options{
		Location: loc,
		Now:      c.Now,
		Notifier: n,
	})
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Settings.Backup.Automatic || !backup.Supported(c.Store.GetConfigPath()) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate turns "", "today" or "yesterday" into a date key in the
// tracker's timezone and validates anything else as YYYY-MM-DD
func ResolveDate(svc *tracker.Service, date string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "", "today":
		return svc.TodayKey(), nil
	case "yesterday":
		return ledger.DateKey(svc.Today().AddDate(0, 0, -1)), nil
	}
	if _, err := ledger.ParseDate(date, svc.Location()); err != nil {
		return "", err
	}
	return date, nil
}

// FindHabit looks a habit up by ID, then by case-insensitive title
func FindHabit(svc *tracker.Service, ref string) (models.Habit, error) {
	if h, err := svc.Ledger().Habit(ref); err == nil {
		return h, nil
	}
	var matches []models.Habit
	for _, h := range svc.Ledger().Habits(true) {
		if strings.EqualFold(h.Title, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", ledger.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	}
	// prefer the active one when a title was reused
	for _, h := range matches {
		if h.IsActive {
			return h, nil
		}
	}
	return matches[0], nil
}

// FindGoal looks a goal up by ID, then by case-insensitive title
func FindGoal(svc *tracker.Service, ref string) (models.Goal, error) {
	if g, err := svc.Ledger().Goal(ref); err == nil {
		return g, nil
	}
	for _, g := range svc.Ledger().Goals(true) {
		if strings.EqualFold(g.Title, ref) {
			return g, nil
		}
	}
	return models.Goal{}, fmt.Errorf("%w: %s", ledger.ErrGoalNotFound, ref)
}

// PrintUnlocked announces newly earned badges after a write
func PrintUnlocked(unlocked []models.Badge) {
	for _, b := range unlocked {
		fmt.Printf("🏆 Badge unlocked: %s %s (+%d pts)\n", b.Icon, b.Name, b.Points)
	}
}
