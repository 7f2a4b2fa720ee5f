package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"dartforge/flow"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// RenderCache stores rendered gallery outputs on disk, keyed by content
// digest. A hit means this exact output was produced before, which lets the
// driver skip rewriting files that have not changed.
// Thread-safe for concurrent access.
type RenderCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the msgpack record stored per rendered entry.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Entry  string      // gallery entry name
	Digest flow.Digest // digest of Text, also the cache key
	Length uint32      // len(Text), doubles as the expected output file size
	Text   string      // rendered source
}

// NewCachePayload assembles a payload for one rendered entry.
func NewCachePayload(entry, text string, digest flow.Digest) (*CachePayload, error) {
	length, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return nil, fmt.Errorf("rendered output too large to cache: %w", err)
	}
	return &CachePayload{
		Schema: cacheSchemaVersion,
		Entry:  entry,
		Digest: digest,
		Length: length,
		Text:   text,
	}, nil
}

// CachePath returns the standard cache location for app without creating
// it: $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func CachePath(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenRenderCache initializes and returns a disk cache at the standard
// location reported by CachePath.
func OpenRenderCache(app string) (*RenderCache, error) {
	dir, err := CachePath(app)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &RenderCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *RenderCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *RenderCache) pathFor(key flow.Digest) string {
	// Subdirectory "render" keeps the root tidy for future artifact kinds.
	return filepath.Join(c.dir, "render", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache atomically.
func (c *RenderCache) Put(key flow.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing
// entry or a schema mismatch is a miss, not an error.
func (c *RenderCache) Get(key flow.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *RenderCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
