package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache is a flat file store under one directory. Entries are keyed by hash
// and expire by age at read time.
type Cache struct {
	dir string
}

// Open returns the default per-user cache.
func Open() (*Cache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return At(filepath.Join(home, ".lintmesh", "cache"))
}

// At returns a cache rooted at dir, creating it if needed.
func At(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key computes a stable entry name from its parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load returns the entry's contents when it exists and is younger than
// maxAge. maxAge <= 0 disables the age check.
func (c *Cache) Load(key string, maxAge time.Duration) ([]byte, bool) {
	path := filepath.Join(c.dir, key)
	if maxAge > 0 {
		info, err := os.Stat(path)
		if err != nil || time.Since(info.ModTime()) > maxAge {
			return nil, false
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Store(key string, data []byte) error {
	return os.WriteFile(filepath.Join(c.dir, key), data, 0o644)
}
