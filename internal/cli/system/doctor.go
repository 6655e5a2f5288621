package system

import (
	"fmt"
	"time"

	"github.com/ratedzzz/small-steps/internal/backup"
	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/ledger"
	"github.com/ratedzzz/small-steps/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool
	warn    bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Settings", run: checkSettings},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Progress integrity", needsDB: true, run: checkProgressIntegrity},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON and memory stores have no schema
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'smallsteps migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !backup.Supported(ctx.Store.GetConfigPath()) {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'smallsteps backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	return ctx.Settings.Validate()
}

func checkValidation(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if _, err := svc.Subscription(); err != nil {
		return fmt.Errorf("failed to read subscription: %w", err)
	}
	if _, err := svc.EarnedBadges(); err != nil {
		return fmt.Errorf("failed to read earned badges: %w", err)
	}

	snap := svc.Ledger().Snapshot()
	seen := make(map[string]bool)
	for _, h := range snap.Habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true
	}
	seen = make(map[string]bool)
	for _, g := range snap.Goals {
		if seen[g.ID] {
			return fmt.Errorf("duplicate goal ID found: %s", g.ID)
		}
		seen[g.ID] = true
	}
	for _, h := range snap.Habits {
		if h.GoalID == "" {
			continue
		}
		if _, ok := snap.Goal(h.GoalID); !ok {
			return fmt.Errorf("habit %s links to missing goal %s", h.ID, h.GoalID)
		}
	}
	return nil
}

func checkProgressIntegrity(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	snap := svc.Ledger().Snapshot()

	orphaned := 0
	for habitID, days := range snap.Progress {
		if _, ok := snap.Habit(habitID); !ok {
			orphaned += len(days)
		}
		for date := range days {
			if _, err := ledger.ParseDate(date, time.UTC); err != nil {
				return fmt.Errorf("habit %s has an entry with invalid date %q", habitID, date)
			}
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d orphaned progress entries (referencing non-existent habits)", orphaned)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Settings.Location(); err != nil {
		return err
	}
	return nil
}
