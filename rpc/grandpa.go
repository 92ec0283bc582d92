package rpc

import (
	"context"

	"github.com/availproject/avail-go-sdk/types"
)

// BlockJustification fetches the GRANDPA finality justification for a
// block, if the node has kept one, via grandpa_proveFinality.
func (c *Client) BlockJustification(ctx context.Context, height types.BlockHeight, retryOnError *bool) ([]byte, error) {
	var hexValue *string
	err := c.callRetryable(ctx, "grandpa_proveFinality", []interface{}{uint32(height)}, &hexValue, retryOnError)
	if err != nil {
		return nil, err
	}
	if hexValue == nil {
		return nil, nil
	}
	return decodeHexValue(*hexValue)
}
