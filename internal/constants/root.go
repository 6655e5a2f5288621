package constants

import "time"

const (
	AppName             = "smallsteps"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigPath   = "~/.config/smallsteps/smallsteps.db"
	DefaultSettingsFile = "config.toml"
	Version             = "v0.3.0"

	// DateFormat is the ledger date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EnvDBConnection holds a PostgreSQL connection string
	EnvDBConnection = "SMALLSTEPS_DB_CONNECTION"

	// Persisted state keys
	KeyHabitStorage = "habit-storage"
	KeyEarnedBadges = "earnedBadges"
	KeySubscription = "subscription"
	KeyLikedQuotes  = "likedQuotes"

	// Record defaults
	DefaultCategory   = "General"
	DefaultHabitColor = "#3B82F6"
	DefaultGoalColor  = "#10B981"
	DefaultMood       = 3
	DefaultPoints     = 0

	// Value ranges enforced on read
	MinPercentage = 0
	MaxPercentage = 100
	MinPoints     = 0
	MaxPoints     = 10
	MinMood       = 1
	MaxMood       = 5

	// Scoring windows
	StreakThreshold    = 70
	StreakScanDays     = 365
	GoalWindowDays     = 30
	EarlyMorningHour   = 8
	LateEveningHour    = 22
	SubscriptionTerm   = 30 * 24 * time.Hour
	DefaultHistoryDays = 14

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "smallsteps-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "smallsteps-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.ratedzzz.smallsteps"
	TrayExecutablePrefix   = "smallsteps-tray"

	// API defaults
	DefaultAPIHost = "127.0.0.1"
	DefaultAPIPort = 8787
)

// Categories offered when creating habits and goals
var Categories = []string{
	DefaultCategory,
	"Health & Fitness",
	"Learning & Education",
	"Career & Work",
	"Personal Development",
	"Self-Care",
	"Relationships",
	"Finance",
	"Hobbies",
}

// SessionState is the screen the TUI is showing
type SessionState int

// Session states. The tab states come first.
const (
	StateToday SessionState = iota
	StateGoals
	StateBadges
	StateAddHabit
	StateJournal
)
