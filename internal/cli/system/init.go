package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store file before initialization."`
	Source string `help:"Store path or connection string to copy existing data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized smallsteps storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.SettingsPath != "" {
		if _, err := os.Stat(ctx.SettingsPath); errors.Is(err, os.ErrNotExist) {
			if err := config.Save(ctx.SettingsPath, ctx.Settings); err != nil {
				return err
			}
			fmt.Printf("Wrote default settings to: %s\n", ctx.SettingsPath)
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		n, err := copyData(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d key(s) successfully!\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if dbPath == storage.MemoryPath || storage.IsPostgresURL(dbPath) {
		return nil
	}

	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	_, err := os.Stat(dbPath)
	switch {
	case err == nil:
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing store at: %s\n", dbPath)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// copyData copies every key of the store at source into dst
func copyData(dst storage.Provider, source string) (int, error) {
	if storage.IsPostgresURL(source) {
		if _, err := storage.ValidateConnString(source); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return 0, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use %s or the keyring instead", constants.EnvDBConnection)
			}
			return 0, err
		}
	}
	src, err := storage.Open(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := dst.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  Copied %s\n", key)
	}
	return len(keys), nil
}
