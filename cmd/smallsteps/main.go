package main

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ratedzzz/small-steps/internal/cli"
	"github.com/ratedzzz/small-steps/internal/cli/backups"
	"github.com/ratedzzz/small-steps/internal/cli/habits"
	"github.com/ratedzzz/small-steps/internal/cli/rewards"
	"github.com/ratedzzz/small-steps/internal/cli/system"
	"github.com/ratedzzz/small-steps/internal/config"
	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/errors"
	"github.com/ratedzzz/small-steps/internal/keyring"
	"github.com/ratedzzz/small-steps/internal/logger"
	"github.com/ratedzzz/small-steps/internal/storage"
)

// postgresAlias selects a connection string from the environment or keyring
const postgresAlias = "postgres"

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store path (.db or .json), :memory:, a PostgreSQL connection string, or 'postgres' to use SMALLSTEPS_DB_CONNECTION or the OS keyring. Connection strings on the command line must NOT embed passwords." type:"string" default:"${store}"`
	Settings string `help:"Settings file path." type:"path" default:"${settings}"`
	Debug    bool   `help:"Log to stderr as well as the log file."`

	Init     system.InitCmd     `cmd:"" help:"Initialize smallsteps storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the local HTTP API."`
	Habit    habits.HabitCmd    `cmd:"" help:"Manage habits."`
	Goal     habits.GoalCmd     `cmd:"" help:"Manage goals."`
	Progress habits.ProgressCmd `cmd:"" help:"Record or show a day's progress."`
	Journal  habits.JournalCmd  `cmd:"" help:"Write a journal entry for a habit."`
	Streak   habits.StreakCmd   `cmd:"" help:"Show current streaks."`

	Stats        rewards.StatsCmd        `cmd:"" help:"Show aggregate stats."`
	Badges       rewards.BadgesCmd       `cmd:"" help:"List and check badges."`
	Level        rewards.LevelCmd        `cmd:"" help:"Show points and level."`
	Subscription rewards.SubscriptionCmd `cmd:"" help:"Show or change the plan tier."`
	Quote        rewards.QuoteCmd        `cmd:"" help:"Daily motivational quotes."`

	Backup backups.BackupCmd `cmd:"" help:"Manage store backups."`
	Cfg    system.ConfigCmd  `cmd:"" name:"config" help:"Manage the PostgreSQL connection and settings."`
}

// openStore picks the storage backend for a --config value
func openStore(value string) (storage.Provider, error) {
	if value != postgresAlias {
		store, err := storage.Open(value)
		if err != nil && stderrors.Is(err, storage.ErrEmbeddedCredentials) {
			return nil, errors.WithHint(err, fmt.Sprintf(
				"store it with 'smallsteps config set-connection' or export %s, then pass --config %s",
				constants.EnvDBConnection, postgresAlias))
		}
		return store, err
	}

	// Env and keyring values may carry a password
	connStr, source, err := keyring.ResolveConnectionString("")
	if err != nil {
		return nil, errors.WithHint(err, fmt.Sprintf(
			"set %s or run 'smallsteps config set-connection'", constants.EnvDBConnection))
	}
	if _, err := storage.ValidateConnString(connStr); err != nil && !stderrors.Is(err, storage.ErrEmbeddedCredentials) {
		return nil, fmt.Errorf("connection string from %s: %w", source, err)
	}
	logger.Debug("Using PostgreSQL connection", "source", source)
	return storage.NewPostgresStore(connStr), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit, streak and badge tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":  constants.Version,
			"store":    constants.DefaultConfigPath,
			"settings": config.DefaultPath(),
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Settings),
	}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	settings, err := config.Load(CLI.Settings)
	if err != nil {
		errors.Fatal(err)
	}

	command := ctx.Command()
	configCmd := strings.HasPrefix(command, "config")

	// Connection commands must work before any store is reachable
	store, err := openStore(CLI.Config)
	if err != nil && !configCmd {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:        store,
		Settings:     settings,
		SettingsPath: CLI.Settings,
	}

	if store != nil && !configCmd && !strings.HasPrefix(command, "init") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		if store != nil {
			store.Close()
		}
		errors.Fatal(err)
	}
}
