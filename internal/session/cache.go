package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// CachedSession is the on-disk record kept by FileCache. The identity is a
// display hint only; it is always re-resolved from the token.
type CachedSession struct {
	Token   string          `json:"token"`
	User    domain.Identity `json:"user"`
	SavedAt time.Time       `json:"savedAt"`
}

// FileCache stores the CLI session in a single JSON file readable only by
// its owner.
type FileCache struct {
	path string
}

// NewFileCache expands a leading "~/" to the user's home directory.
func NewFileCache(path string) (*FileCache, error) {
	if path == "" {
		return nil, errors.New("session cache path is empty")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return &FileCache{path: path}, nil
}

func (c *FileCache) Path() string { return c.path }

// Load returns ErrNoToken when nothing is cached.
func (c *FileCache) Load() (*CachedSession, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("read session cache: %w", err)
	}

	var cs CachedSession
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("decode session cache: %w", err)
	}
	if cs.Token == "" {
		return nil, ErrNoToken
	}
	return &cs, nil
}

func (c *FileCache) Store(cs CachedSession) error {
	if cs.SavedAt.IsZero() {
		cs.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session cache: %w", err)
	}
	return nil
}

// Clear removes the cache. A missing file is not an error.
func (c *FileCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session cache: %w", err)
	}
	return nil
}

// Token makes FileCache a TokenSource.
func (c *FileCache) Token(context.Context) (string, error) {
	cs, err := c.Load()
	if err != nil {
		return "", err
	}
	return cs.Token, nil
}
