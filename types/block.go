package types

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/availproject/avail-go-sdk/scale"
)

// BlockHashLen is the byte length of a block hash.
const BlockHashLen = 32

// BlockHash is a 32-byte block hash.
type BlockHash [BlockHashLen]byte

func (h BlockHash) Encode(w io.Writer) error {
	return scale.EncodeFixedBytes(w, h[:])
}

func (h *BlockHash) Decode(r io.Reader) error {
	return scale.DecodeFixedBytes(r, h[:])
}

// Bytes returns the raw hash bytes.
func (h BlockHash) Bytes() []byte { return h[:] }

// Hex renders the hash as a "0x"-prefixed lowercase hex string, the
// form every Substrate JSON-RPC endpoint expects and returns.
func (h BlockHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// String implements fmt.Stringer.
func (h BlockHash) String() string { return h.Hex() }

// IsZero reports whether h is the all-zero hash (used as a sentinel
// for "not yet known").
func (h BlockHash) IsZero() bool {
	return h == BlockHash{}
}

// ParseBlockHash parses a "0x"-prefixed or bare hex string into a
// BlockHash.
func ParseBlockHash(s string) (BlockHash, error) {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return BlockHash{}, fmt.Errorf("types: invalid block hash hex %q: %w", s, err)
	}
	if len(raw) != BlockHashLen {
		return BlockHash{}, fmt.Errorf("types: block hash must be %d bytes, got %d", BlockHashLen, len(raw))
	}
	var h BlockHash
	copy(h[:], raw)
	return h, nil
}

// BlockHeight is an unsigned 32-bit block number.
type BlockHeight uint32

// BlockInfo pairs a block's hash and height, the unit the block
// subscription cursor yields.
type BlockInfo struct {
	Hash   BlockHash
	Height BlockHeight
}

// HashStringNumberKind tags which form a HashStringNumber was built
// from.
type HashStringNumberKind uint8

const (
	HashStringNumberHash HashStringNumberKind = iota
	HashStringNumberString
	HashStringNumberHeight
)

// HashStringNumber accepts a hash, a decimal/hex string, or a raw
// height, and is normalized by the RPC facade into a BlockHash or
// (BlockHash, BlockHeight) pair before use.
type HashStringNumber struct {
	Kind   HashStringNumberKind
	Hash   BlockHash
	String string
	Height BlockHeight
}

// NewHashStringNumberFromHash wraps a known hash.
func NewHashStringNumberFromHash(h BlockHash) HashStringNumber {
	return HashStringNumber{Kind: HashStringNumberHash, Hash: h}
}

// NewHashStringNumberFromHeight wraps a known height.
func NewHashStringNumberFromHeight(height BlockHeight) HashStringNumber {
	return HashStringNumber{Kind: HashStringNumberHeight, Height: height}
}

// NewHashStringNumberFromString wraps a decimal or "0x"-hex string; the
// kind is resolved lazily by Resolve.
func NewHashStringNumberFromString(s string) HashStringNumber {
	return HashStringNumber{Kind: HashStringNumberString, String: s}
}

// Resolve normalizes the value to either a known BlockHash or, failing
// that, a height to be turned into a hash by the caller (typically via
// chain.BlockHash).
func (h HashStringNumber) Resolve() (hash BlockHash, height BlockHeight, hasHash bool, hasHeight bool, err error) {
	switch h.Kind {
	case HashStringNumberHash:
		return h.Hash, 0, true, false, nil
	case HashStringNumberHeight:
		return BlockHash{}, h.Height, false, true, nil
	case HashStringNumberString:
		if strings.HasPrefix(h.String, "0x") {
			parsed, err := ParseBlockHash(h.String)
			if err != nil {
				return BlockHash{}, 0, false, false, err
			}
			return parsed, 0, true, false, nil
		}
		n, err := strconv.ParseUint(h.String, 10, 32)
		if err != nil {
			return BlockHash{}, 0, false, false, fmt.Errorf("types: %q is neither a hash nor a decimal height: %w", h.String, err)
		}
		return BlockHash{}, BlockHeight(n), false, true, nil
	default:
		return BlockHash{}, 0, false, false, fmt.Errorf("types: unknown HashStringNumber kind %d", h.Kind)
	}
}

// BlockStateKind enumerates the lifecycle states a previously submitted
// block/extrinsic can be observed in.
type BlockStateKind uint8

const (
	// BlockStateIncluded: height <= best and height > finalized and the
	// hash still matches the chain at that height.
	BlockStateIncluded BlockStateKind = iota
	// BlockStateFinalized is terminal.
	BlockStateFinalized
	// BlockStateDiscarded: a different hash now occupies the height.
	BlockStateDiscarded
	// BlockStateDoesNotExist: height > best.
	BlockStateDoesNotExist
)

func (k BlockStateKind) String() string {
	switch k {
	case BlockStateIncluded:
		return "Included"
	case BlockStateFinalized:
		return "Finalized"
	case BlockStateDiscarded:
		return "Discarded"
	case BlockStateDoesNotExist:
		return "DoesNotExist"
	default:
		return "Unknown"
	}
}
