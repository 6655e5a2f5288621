package backups

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ratedzzz/small-steps/internal/backup"
	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/notifier"
	"github.com/ratedzzz/small-steps/internal/storage"
)

func setupTestContext(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "smallsteps.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	settings := config.DefaultConfig()
	settings.General.Timezone = "UTC"
	ctx := &cli.Context{
		Store:    store,
		Settings: settings,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) },
		Notifier: notifier.Nop{},
	}
	return ctx, func() { store.Close() }
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	svc, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("failed to build tracker: %v", err)
	}
	if _, _, err := svc.AddHabit(models.Habit{Title: "Stretch"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list (empty) failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	list, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	// Add a second habit after the backup, then roll back
	if _, _, err := svc.AddHabit(models.Habit{Title: "Journal"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	restore := &BackupRestoreCmd{BackupFile: filepath.Base(list[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	reopened := storage.NewSQLiteStore(ctx.Store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	rctx := &cli.Context{Store: reopened, Settings: ctx.Settings, Now: ctx.Now, Notifier: notifier.Nop{}}
	rsvc, err := rctx.Tracker()
	if err != nil {
		t.Fatalf("failed to build tracker on restored store: %v", err)
	}
	habits := rsvc.Ledger().Habits(true)
	if len(habits) != 1 || habits[0].Title != "Stretch" {
		t.Errorf("restored habits = %+v, want only Stretch", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Fatal("expected restore of a missing file to fail")
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := &cli.Context{Store: store, Settings: config.DefaultConfig()}

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, backup.ErrUnsupportedStore) {
		t.Errorf("expected ErrUnsupportedStore, got %v", err)
	}
}
