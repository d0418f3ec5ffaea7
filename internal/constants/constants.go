package constants

const (
	AppName            = "habitkit"
	Version            = "v0.3.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitkit/habitkit.json"

	// EnvDBConnection overrides the storage location when set; it takes
	// priority over the keyring but not over an explicit --config
	EnvDBConnection = "HABITKIT_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the calendar-month prefix of DateFormat (YYYY-MM)
	MonthFormat = "2006-01"

	// MaxStreakScanDays caps the backward day-by-day streak walk so it
	// terminates even on malformed log data (~10 years)
	MaxStreakScanDays = 3650

	// MaxFreezeDaysPerMonth is the freeze-day cap enforced by the CLI;
	// the tracker only reports the current-month count
	MaxFreezeDaysPerMonth = 2

	// Default statistics windows (days)
	DefaultTrendDays   = 30
	DefaultWeekdayDays = 90
	DefaultRateDays    = 30
	DefaultHistoryDays = 14

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkit-"
	BackupFileSuffix = ".bak"

	// LockFileSuffix is appended to the data file path to form the
	// session lock path
	LockFileSuffix = ".lock"
)

// CategoryPalette is the fixed set of colors cycled through when
// creating categories. New categories take the first unused color
// before any color is reused.
var CategoryPalette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ec4899", // pink
}
