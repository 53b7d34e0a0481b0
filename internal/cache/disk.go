package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// diskSchemaVersion guards against loading an on-disk payload produced by
// an incompatible build; bump it whenever DiskPayload's shape changes.
const diskSchemaVersion uint16 = 1

// Digest is a content hash identifying one evaluated expression tree.
type Digest [sha256.Size]byte

// HashSource computes the Digest a source file's bytes map to.
func HashSource(b []byte) Digest {
	return sha256.Sum256(b)
}

// DiskPayload is the cross-run artifact cached for one expression tree:
// the per-node type assignments produced by a prior evaluation run, plus
// whatever diagnostics it emitted, so `gtc check` can skip re-evaluating
// an unchanged file.
type DiskPayload struct {
	Schema      uint16
	SourceHash  Digest
	NodeTypes   map[uint32]uint32 // ast.ExprID -> types.TypeID
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a serializable snapshot of one diag.Diagnostic,
// trimmed to the fields msgpack needs to round-trip; internal/diag owns
// the live representation.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	FileID   uint32
	Start    uint32
	End      uint32
}

// DiskCache stores DiskPayloads on disk, one file per source digest.
// Thread-safe for concurrent access from cmd/gtc's per-file worker pool.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache rooted at dir, creating it if
// necessary.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "exprs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache, via a
// create-temp-then-rename so a concurrent Get never observes a partial
// write.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskSchemaVersion
	payload.SourceHash = key

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing
// entry is not an error: ok is false and err is nil.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (ok bool, err error) {
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
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	if decErr := dec.Decode(out); decErr != nil {
		return false, decErr
	}
	if out.Schema != diskSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("cache: drop all: %w", err)
	}
	return os.MkdirAll(c.dir, 0o755)
}
