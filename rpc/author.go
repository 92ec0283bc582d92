package rpc

import (
	"context"

	"github.com/availproject/avail-go-sdk/types"
)

// SubmitExtrinsic submits already SCALE-encoded, signed (or unsigned)
// extrinsic bytes via author_submitExtrinsic, and returns the hash the
// node itself computed. The transaction pipeline is responsible for
// checking this matches the hash it computed locally (§4.E).
func (c *Client) SubmitExtrinsic(ctx context.Context, encoded []byte, retryOnError *bool) (types.BlockHash, error) {
	var hexHash string
	err := c.callRetryable(ctx, "author_submitExtrinsic", []interface{}{hexEncode(encoded)}, &hexHash, retryOnError)
	if err != nil {
		return types.BlockHash{}, err
	}
	return types.ParseBlockHash(hexHash)
}

// RotateKeys asks the node to generate a fresh session key set and
// return it SCALE-encoded, via author_rotateKeys. This module never
// decodes the result (it is opaque, session-key-set-specific bytes);
// callers that need to submit it on-chain as a session key change
// extrinsic pass it through unchanged.
func (c *Client) RotateKeys(ctx context.Context, retryOnError *bool) ([]byte, error) {
	var hexValue string
	if err := c.callRetryable(ctx, "author_rotateKeys", nil, &hexValue, retryOnError); err != nil {
		return nil, err
	}
	return decodeHexValue(hexValue)
}
