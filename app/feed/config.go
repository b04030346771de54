package feed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound = errors.New("feed configuration not found")
	ErrNoSources      = errors.New("no feeds configured")
)

const (
	DefaultMaxItems = 20
	DefaultTimeout  = 30 // seconds
	mediumSource    = "Medium"
)

// LoadConfig reads the feed source list. The Medium URL, when set, is added
// as a final source unless a feed already points at it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.MaxItemsPerFeed <= 0 {
		config.MaxItemsPerFeed = DefaultMaxItems
	}

	if medium := strings.TrimSpace(config.MediumURL); medium != "" && !config.hasFeed(medium) {
		config.Feeds = append(config.Feeds, Source{
			Name: mediumSource,
			URL:  medium,
			Tags: []string{"medium"},
		})
	}

	for i := range config.Feeds {
		if config.Feeds[i].Timeout <= 0 {
			config.Feeds[i].Timeout = DefaultTimeout
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

func (c *Config) hasFeed(url string) bool {
	for _, f := range c.Feeds {
		if NormalizeLink(f.URL) == NormalizeLink(url) {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	if len(c.Feeds) == 0 {
		return ErrNoSources
	}

	for i, f := range c.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		for _, filter := range f.Filters {
			if !filterFields[filter.Field] {
				return fmt.Errorf("feed %q: unknown filter field %q", f.Name, filter.Field)
			}
		}
	}

	return nil
}
