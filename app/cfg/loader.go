package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

// ErrUsage marks command lines that could not be parsed.
var ErrUsage = errors.New("invalid usage")

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type migrateCmd struct {
	OutputDir string `long:"output" short:"o" env:"SCHOLAR_OUTPUT" default:"." description:"Root of the destination site"`
	SyncFeeds bool   `long:"sync-feeds" description:"Fetch the migrated feed sources into the feed cache afterwards"`
	Args      struct {
		Source string `positional-arg-name:"SOURCE" description:"Legacy site directory or git URL (defaults to alfolioRepo in config/site.yml)"`
	} `positional-args:"yes"`
}

type syncFeedsCmd struct {
	FeedsConfig string `long:"config" env:"FEEDS_CONFIG" default:"config/feeds.yml" description:"Feed source list"`
	FeedCache   string `long:"cache" env:"FEEDS_CACHE" default:"src/data/feeds.json" description:"Feed cache to merge into"`
	StateDB     string `long:"state-db" env:"STATE_DB" description:"SQLite database recording per-source status (optional)"`
}

type rawCfg struct {
	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"scholar-sync/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Migrate   migrateCmd   `command:"migrate" description:"Migrate a legacy al-folio site into the content tree"`
	SyncFeeds syncFeedsCmd `command:"sync-feeds" description:"Fetch configured RSS/Atom feeds into the feed cache"`
}

// Load parses a command line. It returns a nil config when help was shown.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Name = "scholar-sync"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(rest, " "))
	}

	if parser.Active == nil {
		return nil, fmt.Errorf("%w: no command given", ErrUsage)
	}

	cfg := &Cfg{
		Command:     Command(parser.Active.Name),
		OutputDir:   raw.Migrate.OutputDir,
		Source:      strings.TrimSpace(raw.Migrate.Args.Source),
		SyncFeeds:   raw.Migrate.SyncFeeds,
		FeedsConfig: raw.SyncFeeds.FeedsConfig,
		FeedCache:   raw.SyncFeeds.FeedCache,
		StateDB:     raw.SyncFeeds.StateDB,
		UserAgent:   raw.UserAgent,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	return cfg, nil
}
