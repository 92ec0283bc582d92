// Package storage builds the byte keys a Substrate-style chain uses to
// address its trie storage: pallet/item name hashing, key-part hashing
// for maps, and paged key/value iteration over the resulting address
// space.
package storage

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Hasher produces the bytes a storage key segment is hashed into,
// optionally retaining the original, unhashed bytes appended to the
// digest (the "Concat" family) so a map's keys can be iterated and
// decoded back out of the trie without a side index.
type Hasher func(data []byte) []byte

// Blake2_128 hashes data to a 16-byte blake2b-128 digest.
func Blake2_128(data []byte) []byte {
	return blake2bSum(data, 16)
}

// Blake2_256 hashes data to a 32-byte blake2b-256 digest.
func Blake2_256(data []byte) []byte {
	return blake2bSum(data, 32)
}

// Blake2_128Concat hashes data to 16 bytes and appends the original
// bytes, the hasher pallets use for map keys they need to recover by
// iterating storage (the item's own key is not otherwise stored).
func Blake2_128Concat(data []byte) []byte {
	h := Blake2_128(data)
	return append(h, data...)
}

// Twox128 produces Substrate's 16-byte xxHash64-based digest: two
// 8-byte xxHash64 sums, seeded 0 and 1, concatenated little-endian. This
// is the hasher used for every pallet and storage item name.
func Twox128(data []byte) []byte {
	return twoxN(data, 2)
}

// Twox256 produces the 32-byte, four-lane form of Twox128, used for a
// handful of storage items that need a larger, still-unkeyed digest.
func Twox256(data []byte) []byte {
	return twoxN(data, 4)
}

// Twox64Concat hashes data to 8 bytes with seed 0 and appends the
// original bytes, the cheap, non-cryptographic analogue of
// Blake2_128Concat used for maps whose keys do not need resistance to
// chosen-key collision (most numeric and already-hashed keys).
func Twox64Concat(data []byte) []byte {
	h := twoxN(data, 1)
	return append(h, data...)
}

// Identity returns data unchanged, used for keys that are already a
// hash (such as an AccountId) and gain nothing from rehashing.
func Identity(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

func blake2bSum(data []byte, size int) []byte {
	h, err := blake2b.New(size, nil)
	if err != nil {
		// blake2b.New only errors for an out-of-range size or invalid
		// key; both are fixed, valid inputs here.
		panic(err)
	}
	h.Write(data)
	return h.Sum(nil)
}

// twoxN concatenates n little-endian xxHash64 digests of data, seeded
// 0..n-1, matching the reference xxhash-multi construction Substrate's
// twox_128/twox_256 are defined in terms of.
func twoxN(data []byte, n int) []byte {
	out := make([]byte, 0, n*8)
	for seed := uint64(0); seed < uint64(n); seed++ {
		d := xxhash.NewWithSeed(seed)
		d.Write(data)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], d.Sum64())
		out = append(out, buf[:]...)
	}
	return out
}
