package storage

import (
	"context"
	"fmt"

	"github.com/jrick/bitset"

	"github.com/availproject/avail-go-sdk/types"
)

// Transport is the subset of the RPC facade's state namespace the
// iterator needs: paged key enumeration and single-key fetch, both
// pinned to a specific block.
type Transport interface {
	GetKeysPaged(ctx context.Context, prefix Address, count uint32, startKey Address, at types.BlockHash) ([]Address, error)
	GetStorage(ctx context.Context, key Address, at types.BlockHash) ([]byte, error)
}

// Entry is one key/value pair yielded by an Iterator.
type Entry struct {
	Key   Address
	Value []byte
}

// maxPages bounds how many state_getKeysPaged round trips a single
// iteration will make before giving up, guarding against a
// misbehaving or malicious node serving the same page forever.
const maxPages = 1 << 16

// Iterator walks every key under a storage prefix (a whole map, or a
// single double-map's sub-map), a page of up to pageSize keys at a
// time.
type Iterator struct {
	transport Transport
	prefix    Address
	at        types.BlockHash
	pageSize  uint32

	// pageBudget marks off one bit per page fetched so far, a fixed-
	// capacity bound on the walk's total length independent of any
	// content-based hashing.
	pageBudget    bitset.Bytes
	pageCount     int
	seenStartKeys map[string]bool
}

// NewIterator builds an Iterator over every key sharing prefix as
// observed at the given block.
func NewIterator(transport Transport, prefix Address, at types.BlockHash, pageSize uint32) *Iterator {
	if pageSize == 0 {
		pageSize = 1000
	}
	return &Iterator{
		transport:     transport,
		prefix:        prefix,
		at:            at,
		pageSize:      pageSize,
		pageBudget:    bitset.NewBytes(maxPages),
		seenStartKeys: make(map[string]bool),
	}
}

// Collect walks every page and returns every key/value pair under the
// iterator's prefix. For large maps prefer Each, which streams pages
// instead of buffering the whole result.
func (it *Iterator) Collect(ctx context.Context) ([]Entry, error) {
	var out []Entry
	err := it.Each(ctx, func(e Entry) error {
		out = append(out, e)
		return nil
	})
	return out, err
}

// Each calls fn once per key/value pair under the iterator's prefix, in
// the lexicographic key order state_getKeysPaged returns, stopping (and
// returning fn's error) the first time fn returns a non-nil error.
func (it *Iterator) Each(ctx context.Context, fn func(Entry) error) error {
	var startKey Address

	for {
		keys, err := it.transport.GetKeysPaged(ctx, it.prefix, it.pageSize, startKey, it.at)
		if err != nil {
			return fmt.Errorf("storage: fetching keys page: %w", err)
		}
		if len(keys) == 0 {
			return nil
		}

		startKeyStr := string(startKey)
		if it.seenStartKeys[startKeyStr] {
			return fmt.Errorf("storage: node served a repeated page starting at %x, aborting iteration", []byte(startKey))
		}
		it.seenStartKeys[startKeyStr] = true

		if it.pageCount >= maxPages {
			return fmt.Errorf("storage: exceeded %d pages without exhausting the map", maxPages)
		}
		it.pageBudget.Set(it.pageCount)
		it.pageCount++

		for _, key := range keys {
			value, err := it.transport.GetStorage(ctx, key, it.at)
			if err != nil {
				return fmt.Errorf("storage: fetching value for key %x: %w", []byte(key), err)
			}
			if err := fn(Entry{Key: key, Value: value}); err != nil {
				return err
			}
		}

		startKey = keys[len(keys)-1]
		if len(keys) < int(it.pageSize) {
			return nil
		}
	}
}
