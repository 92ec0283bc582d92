package rpc

import (
	"context"

	"github.com/availproject/avail-go-sdk/types"
)

// BlockLength is the decoded shape of kate_blockLength: the max column
// and row counts the block's erasure-coded matrix is allowed.
type BlockLength struct {
	Rows           uint32 `json:"rows"`
	Cols           uint32 `json:"cols"`
	ChunkSize      uint32 `json:"chunkSize"`
	MaxBlockSize   uint32 `json:"maxBlockSize"`
}

// BlockLength fetches a block's kate commitment matrix dimensions via
// kate_blockLength.
func (c *Client) BlockLength(ctx context.Context, at types.BlockHash, retryOnError *bool) (BlockLength, error) {
	var bl BlockLength
	err := c.callRetryable(ctx, "kate_blockLength", []interface{}{at.Hex()}, &bl, retryOnError)
	return bl, err
}

// QueryProof fetches kate commitment proofs for the given cells via
// kate_queryProof.
func (c *Client) QueryProof(ctx context.Context, cells [][2]uint32, at types.BlockHash, retryOnError *bool) (types.KateProof, error) {
	return c.queryKate(ctx, "kate_queryProof", cells, types.KateProofCell, at, retryOnError)
}

// QueryRows fetches whole kate-committed rows via kate_queryRows.
func (c *Client) QueryRows(ctx context.Context, rows []uint32, at types.BlockHash, retryOnError *bool) (types.KateProof, error) {
	return c.queryKate(ctx, "kate_queryRows", rows, types.KateProofRow, at, retryOnError)
}

// QueryDataProof fetches a data-availability inclusion proof for one
// extrinsic index via kate_queryDataProof.
func (c *Client) QueryDataProof(ctx context.Context, extrinsicIndex uint32, at types.BlockHash, retryOnError *bool) (types.KateProof, error) {
	return c.queryKate(ctx, "kate_queryDataProof", extrinsicIndex, types.KateProofDataProof, at, retryOnError)
}

// QueryMultiProof fetches a batched multi-cell proof via
// kate_queryMultiProof.
func (c *Client) QueryMultiProof(ctx context.Context, cells [][2]uint32, at types.BlockHash, retryOnError *bool) (types.KateProof, error) {
	return c.queryKate(ctx, "kate_queryMultiProof", cells, types.KateProofMultiProof, at, retryOnError)
}

func (c *Client) queryKate(ctx context.Context, method string, arg interface{}, kind types.KateProofKind, at types.BlockHash, retryOnError *bool) (types.KateProof, error) {
	var hexValue string
	err := c.callRetryable(ctx, method, []interface{}{arg, at.Hex()}, &hexValue, retryOnError)
	if err != nil {
		return types.KateProof{}, err
	}
	data, err := decodeHexValue(hexValue)
	if err != nil {
		return types.KateProof{}, err
	}
	return types.KateProof{BlockHash: at, Kind: kind, Data: data}, nil
}
