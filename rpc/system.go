package rpc

import (
	"context"

	"github.com/availproject/avail-go-sdk/storage"
	"github.com/availproject/avail-go-sdk/types"
)

func systemAccountKey(account types.AccountId) storage.Address {
	return storage.MapAddress("System", "Account", storage.Blake2_128Concat, account.Bytes())
}

// AccountNextIndex resolves an account's next usable nonce via
// system_accountNextIndex, accounting for extrinsics already in the
// transaction pool (unlike the on-chain nonce state.getStorage would
// return).
func (c *Client) AccountNextIndex(ctx context.Context, ss58Address string, retryOnError *bool) (uint64, error) {
	var nonce uint64
	err := c.callRetryable(ctx, "system_accountNextIndex", []interface{}{ss58Address}, &nonce, retryOnError)
	return nonce, err
}

// Health is the decoded shape of system_health.
type Health struct {
	Peers           int  `json:"peers"`
	IsSyncing       bool `json:"isSyncing"`
	ShouldHavePeers bool `json:"shouldHavePeers"`
}

// Health fetches the node's sync/peer status via system_health.
func (c *Client) Health(ctx context.Context, retryOnError *bool) (Health, error) {
	var h Health
	err := c.callRetryable(ctx, "system_health", nil, &h, retryOnError)
	return h, err
}

// Peers returns the node's connected peer ids via system_peers.
func (c *Client) Peers(ctx context.Context, retryOnError *bool) ([]string, error) {
	var peers []struct {
		PeerID string `json:"peerId"`
	}
	if err := c.callRetryable(ctx, "system_peers", nil, &peers, retryOnError); err != nil {
		return nil, err
	}
	out := make([]string, len(peers))
	for i, p := range peers {
		out[i] = p.PeerID
	}
	return out, nil
}

// Properties fetches the chain's registered token/ss58 properties via
// system_properties.
func (c *Client) Properties(ctx context.Context, retryOnError *bool) (map[string]interface{}, error) {
	var props map[string]interface{}
	err := c.callRetryable(ctx, "system_properties", nil, &props, retryOnError)
	return props, err
}

// ChainName fetches the human-readable chain name via system_chain.
func (c *Client) ChainName(ctx context.Context, retryOnError *bool) (string, error) {
	var name string
	err := c.callRetryable(ctx, "system_chain", nil, &name, retryOnError)
	return name, err
}

// NodeRoles fetches the node's declared roles (Full, Authority, ...) via
// system_nodeRoles.
func (c *Client) NodeRoles(ctx context.Context, retryOnError *bool) ([]string, error) {
	var roles []string
	err := c.callRetryable(ctx, "system_nodeRoles", nil, &roles, retryOnError)
	return roles, err
}

// AccountNonceAt resolves an account's on-chain nonce at a specific
// block by decoding the System.Account storage map entry's leading
// fixed-width little-endian u32, the value the find-receipt algorithm (§4.E) compares
// against the submitted nonce. A block with no such storage entry
// (account never funded) reports a nonce of 0.
func (c *Client) AccountNonceAt(ctx context.Context, account types.AccountId, at types.BlockHash, retryOnError *bool) (uint64, error) {
	key := systemAccountKey(account)
	raw, err := c.GetStorage(ctx, key, at, retryOnError)
	if err != nil {
		return 0, err
	}
	if len(raw) < 4 {
		return 0, nil
	}
	// AccountInfo's first field is `nonce: u32`, fixed-width (not
	// compact) in the runtime's actual encoding.
	nonce := uint64(raw[0]) | uint64(raw[1])<<8 | uint64(raw[2])<<16 | uint64(raw[3])<<24
	return nonce, nil
}
