package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/decred/slog"

	"github.com/availproject/avail-go-sdk/internal/cache"
	ilog "github.com/availproject/avail-go-sdk/internal/log"
	"github.com/availproject/avail-go-sdk/types"
)

// metadataCacheSize bounds how many chains' worth of decoded metadata
// this client keeps in memory at once; a client only ever talks to one
// chain in practice, so this is generous headroom rather than a tight
// budget.
const metadataCacheSize = 8

// rpcLog returns this package's tagged logger, fetched fresh at each
// call site so it always reflects the backend currently wired via
// ilog.UseBackend/InitLogRotator.
func rpcLog() slog.Logger { return ilog.Tagged("RPCC") }

// RuntimeInfo is the small bundle of chain-identity fields every signed
// extrinsic's ExtrinsicAdditional needs, cached after the first
// successful fetch the same way the teacher's Client caches its
// negotiated protocol version.
type RuntimeInfo struct {
	SpecVersion uint32
	TxVersion   uint32
	GenesisHash types.BlockHash
}

// Client is the shared, mutex-guarded state every namespace method
// (chain.go, state.go, ...) reads and writes: a single transport handle,
// the cached RuntimeInfo, and the client-global retry defaults. One
// RWMutex guards the whole struct, mirroring the teacher's
// rpcclient.Client pattern of a small set of fields behind one lock
// rather than one lock per field.
type Client struct {
	mu sync.RWMutex

	transport Transport

	runtime     *RuntimeInfo
	metadata    *cache.MetadataCache
	defaultRetryOnError bool
	defaultRetryOnNone  bool
}

// NewClient wraps transport in a facade with the given client-global
// retry defaults.
func NewClient(transport Transport, defaultRetryOnError, defaultRetryOnNone bool) *Client {
	return &Client{
		transport:           transport,
		defaultRetryOnError: defaultRetryOnError,
		defaultRetryOnNone:  defaultRetryOnNone,
		metadata:            cache.NewMetadataCache(metadataCacheSize),
	}
}

// UseMetadataStore wires a durable cache.Store (e.g. cache.LevelDBStore)
// behind the client's in-memory metadata cache, so GetMetadata's
// raw metadata bytes survive process restarts instead of being refetched.
func (c *Client) UseMetadataStore(store cache.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata.WithStore(store)
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transport.Close()
}

// PendingCall is a call already dispatched to the transport whose
// result has not yet been awaited, mirroring the teacher's
// Future-returning async RPC methods (FutureGetTransactionResult):
// useful for firing several calls before blocking on any of them.
type PendingCall struct {
	result chan pendingResult
}

type pendingResult struct {
	raw json.RawMessage
	err error
}

// Result blocks until the call's response arrives or ctx is canceled.
func (p *PendingCall) Result(ctx context.Context) (json.RawMessage, error) {
	select {
	case r := <-p.result:
		return r.raw, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Call dispatches method immediately in the current goroutine but
// returns a PendingCall so the caller can defer awaiting the result,
// the direct-call analogue of the teacher's fire-and-forget async
// command dispatch.
func (c *Client) Call(ctx context.Context, method string, params []interface{}) *PendingCall {
	p := &PendingCall{result: make(chan pendingResult, 1)}
	raw, err := c.transport.Call(ctx, method, params)
	p.result <- pendingResult{raw: raw, err: err}
	return p
}

// call is the synchronous helper every namespace method builds on.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	rpcLog().Tracef("-> %s %v", method, params)
	raw, err := c.transport.Call(ctx, method, params)
	if err != nil {
		rpcLog().Debugf("<- %s: transport error: %v", method, err)
		return fmt.Errorf("rpc: %s: %w", method, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		rpcLog().Debugf("<- %s: malformed response: %v", method, err)
		return fmt.Errorf("rpc: %s: decoding response: %w", method, err)
	}
	return nil
}

// callRetryable wraps call with the client's error-retry policy.
func (c *Client) callRetryable(ctx context.Context, method string, params []interface{}, out interface{}, override *bool) error {
	retryOnError := effective(override, c.retryOnErrorDefault())
	_, err := withRetry(ctx, retryOnError, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.call(ctx, method, params, out)
	})
	return err
}

func (c *Client) retryOnErrorDefault() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultRetryOnError
}

func (c *Client) retryOnNoneDefault() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultRetryOnNone
}

// RuntimeInfo returns the cached chain identity, fetching and caching it
// via state_getRuntimeVersion/chain_getBlockHash(0) on first use.
func (c *Client) RuntimeInfo(ctx context.Context) (RuntimeInfo, error) {
	c.mu.RLock()
	cached := c.runtime
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}
	return c.refreshRuntimeInfo(ctx)
}

func (c *Client) refreshRuntimeInfo(ctx context.Context) (RuntimeInfo, error) {
	rpcLog().Debugf("refreshing runtime info")

	var version struct {
		SpecVersion uint32 `json:"specVersion"`
		TxVersion   uint32 `json:"transactionVersion"`
	}
	if err := c.call(ctx, "state_getRuntimeVersion", nil, &version); err != nil {
		return RuntimeInfo{}, err
	}

	genesisHash, err := c.BlockHash(ctx, 0, nil)
	if err != nil {
		return RuntimeInfo{}, fmt.Errorf("rpc: fetching genesis hash: %w", err)
	}

	info := RuntimeInfo{
		SpecVersion: version.SpecVersion,
		TxVersion:   version.TxVersion,
		GenesisHash: genesisHash,
	}
	rpcLog().Infof("runtime info: spec_version=%d tx_version=%d genesis=%s", info.SpecVersion, info.TxVersion, genesisHash.Hex())

	c.mu.Lock()
	c.runtime = &info
	c.mu.Unlock()

	return info, nil
}
