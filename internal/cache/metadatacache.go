// Package cache holds the optional, pluggable runtime-metadata cache
// mentioned in the client's shared-state description: in-memory
// by default, never required, adapted from the teacher's SigCache
// (RWMutex-guarded map with randomized eviction) generalized from
// caching verified signatures to caching raw, undecoded metadata bytes
// keyed by genesis hash instead of a tx hash.
package cache

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// Store is the pluggable backing for MetadataCache. The default,
// zero-value MetadataCache uses an in-memory map; WithStore swaps in a
// durable one (e.g. LevelDBStore) for long-lived processes that want
// to skip re-fetching metadata across restarts.
type Store interface {
	Get(key [32]byte) ([]byte, bool)
	Put(key [32]byte, value []byte)
}

// MetadataCache maps genesis hashes to cached metadata bytes, evicting
// a random entry when full; unlike the teacher's SigCache there is no short-hash index, since
// genesis hashes are already a cheap, collision-free map key.
type MetadataCache struct {
	mu         sync.RWMutex
	entries    map[[32]byte][]byte
	store      Store
	maxEntries uint
}

// NewMetadataCache builds an in-memory metadata cache holding at most
// maxEntries genesis-hash-keyed blobs, evicting a random entry (same
// policy as the teacher's signature cache) once full.
func NewMetadataCache(maxEntries uint) *MetadataCache {
	return &MetadataCache{
		entries:    make(map[[32]byte][]byte, maxEntries),
		maxEntries: maxEntries,
	}
}

// WithStore swaps in a durable Store (e.g. LevelDBStore) consulted
// alongside the in-memory map: reads check memory first, then store;
// writes populate both.
func (c *MetadataCache) WithStore(store Store) *MetadataCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
	return c
}

// Get returns the cached metadata for genesisHash, if any.
func (c *MetadataCache) Get(genesisHash [32]byte) ([]byte, bool) {
	c.mu.RLock()
	b, ok := c.entries[genesisHash]
	store := c.store
	c.mu.RUnlock()
	if ok {
		return b, true
	}
	if store == nil {
		return nil, false
	}
	return store.Get(genesisHash)
}

// Put caches metadata for genesisHash, evicting a random entry first if
// the in-memory map is already at maxEntries.
func (c *MetadataCache) Put(genesisHash [32]byte, metadata []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && uint(len(c.entries)+1) > c.maxEntries {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[genesisHash] = metadata

	if c.store != nil {
		c.store.Put(genesisHash, metadata)
	}
}

// LevelDBStore is a Store backed by an on-disk goleveldb database, for
// callers that want the metadata cache to survive process restarts.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (creating if absent) a goleveldb database at
// dir to back a MetadataCache.
func OpenLevelDBStore(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key [32]byte) ([]byte, bool) {
	v, err := s.db.Get(key[:], nil)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (s *LevelDBStore) Put(key [32]byte, value []byte) {
	_ = s.db.Put(key[:], value, nil)
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
