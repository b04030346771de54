package legacy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

var ErrSourceNotFound = errors.New("legacy source not found")

// Checkout is a legacy site available on the local filesystem.
type Checkout struct {
	Dir       string
	temporary bool
}

// Open resolves a migration source. A local directory is used in place; a git
// URL is shallow-cloned into a temporary directory removed by Close.
func Open(ctx context.Context, source string) (*Checkout, error) {
	source = strings.TrimSpace(source)

	if info, err := os.Stat(source); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, source)
		}
		dir, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve source path: %w", err)
		}
		return &Checkout{Dir: dir}, nil
	}

	if !isRemote(source) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}

	dir, err := os.MkdirTemp("", "legacy-site-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create clone directory: %w", err)
	}

	slog.Info("Cloning legacy site", "url", source, "path", dir)
	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   source,
		Depth: 1,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone %s: %w", source, err)
	}

	return &Checkout{Dir: dir, temporary: true}, nil
}

// Close removes the checkout when it was cloned.
func (c *Checkout) Close() error {
	if c == nil || !c.temporary {
		return nil
	}
	if err := os.RemoveAll(c.Dir); err != nil {
		return fmt.Errorf("failed to remove clone: %w", err)
	}
	return nil
}

func isRemote(source string) bool {
	return strings.Contains(source, "://") || strings.HasPrefix(source, "git@")
}
