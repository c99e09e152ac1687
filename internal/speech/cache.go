package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/healthmate/internal/logger"
)

// AudioCache keeps synthesized audio in memory and, optionally, on disk.
// Keys are sha256(scope + ":" + text), where scope carries the voice and
// prosody, so changing either simply misses.
//
// The disk directory is always read when set; diskWrite only controls
// whether new entries are persisted.
type AudioCache struct {
	mu        sync.RWMutex
	entries   map[string][]byte
	log       *logger.Logger
	scope     string
	cacheDir  string
	diskWrite bool
	hits      int64
	misses    int64
}

// NewAudioCache creates a cache. An empty cacheDir disables the disk layer.
func NewAudioCache(scope, cacheDir string, diskWrite bool, log *logger.Logger) *AudioCache {
	c := &AudioCache{
		entries:   make(map[string][]byte),
		log:       log,
		scope:     scope,
		cacheDir:  cacheDir,
		diskWrite: diskWrite,
	}

	if cacheDir != "" && diskWrite {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			log.Error("cache: failed to create cache dir %s: %v", cacheDir, err)
		}
	}
	return c
}

// Get returns cached audio for text, checking memory then disk.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.hashKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.entries[key]; ok {
		c.hits++
		c.log.Debug("cache hit (mem): %s (%d bytes)", truncate(text, 40), len(data))
		return data, true
	}

	if c.cacheDir != "" {
		if data, err := os.ReadFile(c.diskPath(key)); err == nil {
			c.entries[key] = data
			c.hits++
			c.log.Debug("cache hit (disk): %s (%d bytes)", truncate(text, 40), len(data))
			return data, true
		}
	}

	c.misses++
	return nil, false
}

// Put stores audio for text in memory, and on disk when enabled.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.hashKey(text)

	c.mu.Lock()
	c.entries[key] = audio
	c.mu.Unlock()

	if c.cacheDir == "" || !c.diskWrite {
		return
	}
	path := c.diskPath(key)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		c.log.Error("cache: disk write failed for %s: %v", path, err)
	}
}

// Has reports whether audio for text is cached in memory or on disk.
func (c *AudioCache) Has(text string) bool {
	key := c.hashKey(text)

	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return true
	}
	if c.cacheDir == "" {
		return false
	}
	_, err := os.Stat(c.diskPath(key))
	return err == nil
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *AudioCache) hashKey(text string) string {
	h := sha256.Sum256([]byte(c.scope + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) diskPath(key string) string {
	return filepath.Join(c.cacheDir, key+".wav")
}
