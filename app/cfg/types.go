package cfg

// Command names the subcommand a run executes.
type Command string

const (
	CommandMigrate   Command = "migrate"
	CommandSyncFeeds Command = "sync-feeds"
)

type Cfg struct {
	Command Command

	// Migration configuration
	OutputDir string
	Source    string // local directory or git URL; empty falls back to the recorded repository
	SyncFeeds bool   // fetch the migrated feed sources once the tree is written

	// Feed sync configuration
	FeedsConfig string
	FeedCache   string
	StateDB     string // optional SQLite source ledger

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
