package rpc

import (
	"context"
	"fmt"

	"github.com/availproject/avail-go-sdk/types"
)

// Block is the minimal decoded shape this module needs out of
// chain_getBlock: the list of extrinsics exactly as submitted (still
// SCALE-encoded; decoding into types.Extrinsic is the caller's job).
type Block struct {
	Hash        types.BlockHash
	Extrinsics  []string // hex-encoded, as returned by chain_getBlock
	ParentHash  types.BlockHash
	Number      types.BlockHeight
}

// BlockHash resolves a block height to its hash via chain_getBlockHash.
// retryOnError overrides the client default when non-nil.
func (c *Client) BlockHash(ctx context.Context, height types.BlockHeight, retryOnError *bool) (types.BlockHash, error) {
	var hexHash string
	err := c.callRetryable(ctx, "chain_getBlockHash", []interface{}{uint32(height)}, &hexHash, retryOnError)
	if err != nil {
		return types.BlockHash{}, err
	}
	return types.ParseBlockHash(hexHash)
}

// BlockHashOptional resolves a block height to its hash, treating a
// null RPC result as "not yet known" rather than an error — used by the
// subscription cursor while following the chain head, where
// retryOnNone should usually be set.
func (c *Client) BlockHashOptional(ctx context.Context, height types.BlockHeight, retryOnError, retryOnNone *bool) (*types.BlockHash, error) {
	fn := func(ctx context.Context) (*string, error) {
		var hexHash *string
		err := c.call(ctx, "chain_getBlockHash", []interface{}{uint32(height)}, &hexHash)
		return hexHash, err
	}

	result, err := withRetryOnNone(ctx,
		effective(retryOnError, c.retryOnErrorDefault()),
		effective(retryOnNone, c.retryOnNoneDefault()),
		fn,
	)
	if err != nil || result == nil {
		return nil, err
	}
	hash, err := types.ParseBlockHash(*result)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

// FinalizedHead returns the current finalized block's hash.
func (c *Client) FinalizedHead(ctx context.Context, retryOnError *bool) (types.BlockHash, error) {
	var hexHash string
	err := c.callRetryable(ctx, "chain_getFinalizedHead", nil, &hexHash, retryOnError)
	if err != nil {
		return types.BlockHash{}, err
	}
	return types.ParseBlockHash(hexHash)
}

// Header is the subset of chain_getHeader this module consumes.
type Header struct {
	Number     hexOrDecimal
	ParentHash string
}

// BlockInfoAt resolves a hash to a (hash, height) pair via
// chain_getHeader.
func (c *Client) BlockInfoAt(ctx context.Context, hash types.BlockHash, retryOnError *bool) (types.BlockInfo, error) {
	var header Header
	err := c.callRetryable(ctx, "chain_getHeader", []interface{}{hash.Hex()}, &header, retryOnError)
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("rpc: chain_getHeader: %w", err)
	}
	height, err := header.Number.Uint32()
	if err != nil {
		return types.BlockInfo{}, err
	}
	return types.BlockInfo{Hash: hash, Height: types.BlockHeight(height)}, nil
}

// BestHead returns the current best (not necessarily finalized) block
// as a (hash, height) pair, resolving chain_getHeader with no hash
// argument (the node's own head).
func (c *Client) BestHead(ctx context.Context, retryOnError *bool) (types.BlockInfo, error) {
	var header Header
	err := c.callRetryable(ctx, "chain_getHeader", nil, &header, retryOnError)
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("rpc: chain_getHeader: %w", err)
	}
	height, err := header.Number.Uint32()
	if err != nil {
		return types.BlockInfo{}, err
	}
	hash, err := c.BlockHash(ctx, types.BlockHeight(height), retryOnError)
	if err != nil {
		return types.BlockInfo{}, err
	}
	return types.BlockInfo{Hash: hash, Height: types.BlockHeight(height)}, nil
}

// GetBlock fetches a full block body by hash via chain_getBlock.
func (c *Client) GetBlock(ctx context.Context, hash types.BlockHash, retryOnError *bool) (Block, error) {
	var resp struct {
		Block struct {
			Header struct {
				Number     hexOrDecimal `json:"number"`
				ParentHash string       `json:"parentHash"`
			} `json:"header"`
			Extrinsics []string `json:"extrinsics"`
		} `json:"block"`
	}
	if err := c.callRetryable(ctx, "chain_getBlock", []interface{}{hash.Hex()}, &resp, retryOnError); err != nil {
		return Block{}, err
	}

	parent, err := types.ParseBlockHash(resp.Block.Header.ParentHash)
	if err != nil {
		return Block{}, err
	}
	number, err := resp.Block.Header.Number.Uint32()
	if err != nil {
		return Block{}, err
	}

	return Block{
		Hash:       hash,
		Extrinsics: resp.Block.Extrinsics,
		ParentHash: parent,
		Number:     types.BlockHeight(number),
	}, nil
}
