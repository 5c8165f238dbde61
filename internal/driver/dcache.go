package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/types"
)

// diskCacheSchemaVersion guards against decoding payloads written by an
// incompatible build. Bump it whenever the payload layout changes.
const diskCacheSchemaVersion = 1

// Digest identifies a manifest's content.
type Digest [sha256.Size]byte

// HashContent digests raw manifest bytes.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// AccessorEntryPayload is one accessible field in serialized form. Type is
// the human-readable label rather than a TypeID, since IDs are not stable
// across interner instances.
type AccessorEntryPayload struct {
	Field    string `msgpack:"field"`
	Position uint32 `msgpack:"position"`
	Type     string `msgpack:"type"`
}

// TypeTablePayload is one custom type's accessor table in serialized form.
type TypeTablePayload struct {
	Name   string                 `msgpack:"name"`
	Fields []AccessorEntryPayload `msgpack:"fields"`
}

// DiskPayload is the unit stored per manifest digest.
type DiskPayload struct {
	Schema int                `msgpack:"schema"`
	Module string             `msgpack:"module"`
	Tables []TypeTablePayload `msgpack:"tables"`
}

// PayloadFromResult flattens a check's accessor tables into a DiskPayload.
// Tables are emitted in declaration order by walking Declared through the
// manifest's type list.
func PayloadFromResult(module string, res *Result, order []string) DiskPayload {
	payload := DiskPayload{Schema: diskCacheSchemaVersion, Module: module}
	in := res.Checker.Types()
	for _, name := range order {
		typeID, ok := res.Declared[name]
		if !ok {
			continue
		}
		table := res.Checker.AccessorTable(typeID)
		entry := TypeTablePayload{Name: name}
		for _, field := range table.Fields() {
			acc, _ := table.Lookup(field)
			entry.Fields = append(entry.Fields, AccessorEntryPayload{
				Field:    in.Strings.MustLookup(field),
				Position: acc.Position,
				Type:     types.Label(in, acc.Type),
			})
		}
		payload.Tables = append(payload.Tables, entry)
	}
	return payload
}

// DiskCache persists accessor-table payloads keyed by manifest digest under
// a single directory. Writes go through a temp file and rename, so readers
// never observe a partial payload.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache creates (if needed) and opens the cache directory. When dir
// is empty the cache lives under the user cache dir, honoring
// XDG_CACHE_HOME on platforms that use it.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache dir: %w", err)
		}
		dir = filepath.Join(base, "tern")
	}
	dir = filepath.Join(dir, "tables")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir reports the directory payloads are stored in.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(digest Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(digest[:])+".mp")
}

// Get loads the payload for digest. A missing entry or one written with a
// different schema version is a miss, not an error.
func (c *DiskCache) Get(digest Digest) (DiskPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(digest))
	if errors.Is(err, os.ErrNotExist) {
		return DiskPayload{}, false, nil
	}
	if err != nil {
		return DiskPayload{}, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return DiskPayload{}, false, fmt.Errorf("decoding cache payload: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return DiskPayload{}, false, nil
	}
	return payload, true, nil
}

// Put stores the payload for digest.
func (c *DiskCache) Put(digest Digest, payload DiskPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding cache payload: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "tables-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, c.pathFor(digest)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
