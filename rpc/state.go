package rpc

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/availproject/avail-go-sdk/storage"
	"github.com/availproject/avail-go-sdk/types"
)

// GetStorage fetches the raw value at key as of the block at, via
// state_getStorage. A null result (key absent) is surfaced as a nil
// slice with no error; callers needing retry-on-none semantics should
// use GetStorageOptional instead.
func (c *Client) GetStorage(ctx context.Context, key storage.Address, at types.BlockHash, retryOnError *bool) ([]byte, error) {
	var hexValue *string
	err := c.callRetryable(ctx, "state_getStorage", []interface{}{hexEncode(key), at.Hex()}, &hexValue, retryOnError)
	if err != nil {
		return nil, err
	}
	if hexValue == nil {
		return nil, nil
	}
	return decodeHexValue(*hexValue)
}

// GetStorageOptional is GetStorage with the Option<T>-aware retry
// policy §4.C describes: when retryOnNone is effectively set, a null
// result is retried up to the back-off budget before giving up.
func (c *Client) GetStorageOptional(ctx context.Context, key storage.Address, at types.BlockHash, retryOnError, retryOnNone *bool) ([]byte, error) {
	fn := func(ctx context.Context) (*string, error) {
		var hexValue *string
		err := c.call(ctx, "state_getStorage", []interface{}{hexEncode(key), at.Hex()}, &hexValue)
		return hexValue, err
	}
	result, err := withRetryOnNone(ctx,
		effective(retryOnError, c.retryOnErrorDefault()),
		effective(retryOnNone, c.retryOnNoneDefault()),
		fn,
	)
	if err != nil || result == nil {
		return nil, err
	}
	return decodeHexValue(*result)
}

// GetKeysPaged implements storage.Transport's key-enumeration half via
// state_getKeysPaged.
func (c *Client) GetKeysPaged(ctx context.Context, prefix storage.Address, count uint32, startKey storage.Address, at types.BlockHash) ([]storage.Address, error) {
	var startParam interface{}
	if len(startKey) > 0 {
		startParam = hexEncode(startKey)
	}
	var hexKeys []string
	err := c.callRetryable(ctx, "state_getKeysPaged",
		[]interface{}{hexEncode(prefix), count, startParam, at.Hex()}, &hexKeys, nil)
	if err != nil {
		return nil, err
	}
	out := make([]storage.Address, 0, len(hexKeys))
	for _, hk := range hexKeys {
		raw, err := decodeHexValue(hk)
		if err != nil {
			return nil, err
		}
		out = append(out, storage.Address(raw))
	}
	return out, nil
}

// storageTransportGetStorage implements storage.Transport's value-fetch half, with the
// client's error-retry default applied and no retry-on-none behavior
// (a map entry legitimately absent is a valid, final answer during
// iteration).
func (c *Client) storageTransportGetStorage(ctx context.Context, key storage.Address, at types.BlockHash) ([]byte, error) {
	return c.GetStorage(ctx, key, at, nil)
}

// AsStorageTransport adapts Client to storage.Transport for use with
// storage.NewIterator.
func (c *Client) AsStorageTransport() storage.Transport {
	return storageTransportAdapter{c}
}

type storageTransportAdapter struct{ c *Client }

func (a storageTransportAdapter) GetKeysPaged(ctx context.Context, prefix storage.Address, count uint32, startKey storage.Address, at types.BlockHash) ([]storage.Address, error) {
	return a.c.GetKeysPaged(ctx, prefix, count, startKey, at)
}

func (a storageTransportAdapter) GetStorage(ctx context.Context, key storage.Address, at types.BlockHash) ([]byte, error) {
	return a.c.storageTransportGetStorage(ctx, key, at)
}

// GetMetadata fetches the raw SCALE-encoded runtime metadata blob via
// state_getMetadata. This module treats metadata as opaque bytes; it
// does not decode the metadata format itself (§1 Non-goals). Requests
// for the current (at-is-zero) metadata are served from the client's
// genesis-hash-keyed MetadataCache when present, since the running
// chain's metadata does not change between runtime upgrades; an
// explicit historical at bypasses the cache, since a past block's
// metadata may predate the cached, current one.
func (c *Client) GetMetadata(ctx context.Context, at types.BlockHash, retryOnError *bool) ([]byte, error) {
	if at.IsZero() {
		if info, err := c.RuntimeInfo(ctx); err == nil {
			if cached, ok := c.metadata.Get(info.GenesisHash); ok {
				rpcLog().Debugf("metadata cache hit for genesis %s", info.GenesisHash.Hex())
				return cached, nil
			}
		}
	}

	var hexValue string
	params := []interface{}{}
	if !at.IsZero() {
		params = append(params, at.Hex())
	}
	if err := c.callRetryable(ctx, "state_getMetadata", params, &hexValue, retryOnError); err != nil {
		return nil, err
	}
	blob, err := decodeHexValue(hexValue)
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		if info, err := c.RuntimeInfo(ctx); err == nil {
			rpcLog().Debugf("caching metadata for genesis %s (%d bytes)", info.GenesisHash.Hex(), len(blob))
			c.metadata.Put(info.GenesisHash, blob)
		}
	}
	return blob, nil
}

// RuntimeCall invokes an arbitrary runtime API entry point via
// state_call, returning its raw SCALE-encoded result bytes.
func (c *Client) RuntimeCall(ctx context.Context, method string, encodedArgs []byte, at types.BlockHash, retryOnError *bool) ([]byte, error) {
	params := []interface{}{method, hexEncode(encodedArgs)}
	if !at.IsZero() {
		params = append(params, at.Hex())
	}
	var hexValue string
	if err := c.callRetryable(ctx, "state_call", params, &hexValue, retryOnError); err != nil {
		return nil, err
	}
	return decodeHexValue(hexValue)
}

func hexEncode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func decodeHexValue(s string) ([]byte, error) {
	if len(s) < 2 || s[:2] != "0x" {
		return nil, fmt.Errorf("rpc: expected a 0x-prefixed hex string, got %q", s)
	}
	return hex.DecodeString(s[2:])
}
