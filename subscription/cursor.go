// Package subscription walks the finalized or best chain forward and
// backward, yielding (hash, height) pairs one block at a time. It is the
// Go counterpart to the teacher's async RPC client pattern applied to a
// polling loop instead of a single request: a cursor that lazily resolves
// its starting point on first use and then advances strictly in one
// direction per call.
package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/decred/slog"

	ilog "github.com/availproject/avail-go-sdk/internal/log"
	"github.com/availproject/avail-go-sdk/types"
)

// subLog returns this package's tagged logger, fetched fresh at each
// call site so it always reflects the backend currently wired via
// ilog.UseBackend/InitLogRotator.
func subLog() slog.Logger { return ilog.Tagged("SUBS") }

// ErrNoBlockHash is returned when a retry-on-none-backed lookup gave up
// without ever observing a hash for a height the cursor expected to
// exist (a transient RPC gap, not a chain condition).
var ErrNoBlockHash = errors.New("subscription: expected a block hash, got none")

// ChainReader is the slice of rpc.Client the cursor needs; *rpc.Client
// satisfies it directly.
type ChainReader interface {
	BlockHash(ctx context.Context, height types.BlockHeight, retryOnError *bool) (types.BlockHash, error)
	BlockHashOptional(ctx context.Context, height types.BlockHeight, retryOnError, retryOnNone *bool) (*types.BlockHash, error)
	FinalizedHead(ctx context.Context, retryOnError *bool) (types.BlockHash, error)
	BlockInfoAt(ctx context.Context, hash types.BlockHash, retryOnError *bool) (types.BlockInfo, error)
	BestHead(ctx context.Context, retryOnError *bool) (types.BlockInfo, error)
}

// Config controls a Cursor's behavior. It must be set before the first
// call to Next or Prev; once the cursor is initialized, UseBestBlock is
// a no-op to change.
type Config struct {
	UseBestBlock bool
	StartHeight  *types.BlockHeight
	PollInterval time.Duration
	RetryOnError *bool
}

// DefaultConfig returns the zero-value configuration with the spec's
// default poll interval filled in.
func DefaultConfig() Config {
	return Config{PollInterval: 3 * time.Second}
}

// Cursor yields blocks walking forward (Next) or backward (Prev) along
// either the finalized chain or the current best chain. A Cursor is not
// safe for concurrent use; it is owned exclusively by the caller that
// drives it.
type Cursor struct {
	client ChainReader
	config Config

	initialized    bool
	usingBestBlock bool // frozen from config.UseBestBlock at initialization time

	cachedFinalizedHeight *types.BlockHeight

	// finalized-chain variant state
	nextBlockHeight        types.BlockHeight
	processedPreviousBlock bool

	// best-chain variant state
	currentBlockHeight types.BlockHeight
	blockProcessed     []types.BlockHash
}

// NewCursor builds a Cursor against client. A zero PollInterval in
// config is replaced with the 3-second default.
func NewCursor(client ChainReader, config Config) *Cursor {
	if config.PollInterval <= 0 {
		config.PollInterval = 3 * time.Second
	}
	return &Cursor{client: client, config: config}
}

// Next returns the next block reference, advancing the cursor forward
// by one block.
func (c *Cursor) Next(ctx context.Context) (types.BlockInfo, error) {
	if err := c.ensureInitialized(ctx); err != nil {
		return types.BlockInfo{}, err
	}
	var (
		info types.BlockInfo
		err  error
	)
	if c.usingBestBlock {
		info, err = c.nextBest(ctx)
	} else {
		info, err = c.nextFinalized(ctx)
	}
	if err != nil {
		return types.BlockInfo{}, err
	}
	subLog().Debugf("advanced to block %d/%s", info.Height, info.Hash.Hex())
	return info, nil
}

// Prev returns the previous block reference, moving the cursor backward
// by one block.
func (c *Cursor) Prev(ctx context.Context) (types.BlockInfo, error) {
	if err := c.ensureInitialized(ctx); err != nil {
		return types.BlockInfo{}, err
	}
	if c.usingBestBlock {
		c.currentBlockHeight = saturatingSub(c.currentBlockHeight, 1)
		c.blockProcessed = nil
		return c.nextBest(ctx)
	}

	c.nextBlockHeight = saturatingSub(c.nextBlockHeight, 1)
	if c.processedPreviousBlock {
		c.nextBlockHeight = saturatingSub(c.nextBlockHeight, 1)
		c.processedPreviousBlock = false
	}
	return c.nextFinalized(ctx)
}

func (c *Cursor) ensureInitialized(ctx context.Context) error {
	if c.initialized {
		return nil
	}

	var height types.BlockHeight
	switch {
	case c.config.StartHeight != nil:
		height = *c.config.StartHeight
	case c.config.UseBestBlock:
		info, err := c.client.BestHead(ctx, c.config.RetryOnError)
		if err != nil {
			return err
		}
		height = info.Height
	default:
		info, err := c.finalizedInfo(ctx)
		if err != nil {
			return err
		}
		height = info.Height
	}

	c.usingBestBlock = c.config.UseBestBlock
	if c.usingBestBlock {
		c.currentBlockHeight = height
		c.blockProcessed = nil
	} else {
		c.nextBlockHeight = height
		c.processedPreviousBlock = false
	}
	c.initialized = true
	subLog().Debugf("cursor initialized at height %d (best_block=%v)", height, c.usingBestBlock)
	return nil
}

func (c *Cursor) finalizedInfo(ctx context.Context) (types.BlockInfo, error) {
	hash, err := c.client.FinalizedHead(ctx, c.config.RetryOnError)
	if err != nil {
		return types.BlockInfo{}, err
	}
	return c.client.BlockInfoAt(ctx, hash, c.config.RetryOnError)
}

func (c *Cursor) fetchLatestFinalizedHeight(ctx context.Context) (types.BlockHeight, error) {
	if c.cachedFinalizedHeight != nil {
		return *c.cachedFinalizedHeight, nil
	}
	info, err := c.finalizedInfo(ctx)
	if err != nil {
		return 0, err
	}
	c.cachedFinalizedHeight = &info.Height
	return info.Height, nil
}

func (c *Cursor) nextFinalized(ctx context.Context) (types.BlockInfo, error) {
	latest, err := c.fetchLatestFinalizedHeight(ctx)
	if err != nil {
		return types.BlockInfo{}, err
	}

	var result types.BlockInfo
	if latest >= c.nextBlockHeight {
		result, err = c.runFinalizedHistorical(ctx)
	} else {
		result, err = c.runFinalizedHead(ctx)
	}
	if err != nil {
		return types.BlockInfo{}, err
	}

	c.nextBlockHeight = result.Height + 1
	c.processedPreviousBlock = true
	return result, nil
}

func (c *Cursor) runFinalizedHistorical(ctx context.Context) (types.BlockInfo, error) {
	height := c.nextBlockHeight
	hash, err := c.client.BlockHash(ctx, height, c.config.RetryOnError)
	if err != nil {
		return types.BlockInfo{}, err
	}
	return types.BlockInfo{Hash: hash, Height: height}, nil
}

func (c *Cursor) runFinalizedHead(ctx context.Context) (types.BlockInfo, error) {
	for {
		head, err := c.finalizedInfo(ctx)
		if err != nil {
			return types.BlockInfo{}, err
		}

		if c.nextBlockHeight > head.Height {
			subLog().Tracef("waiting for finalized height %d (head at %d), polling in %s", c.nextBlockHeight, head.Height, c.config.PollInterval)
			if err := sleepCtx(ctx, c.config.PollInterval); err != nil {
				return types.BlockInfo{}, err
			}
			continue
		}
		if c.nextBlockHeight == head.Height {
			return head, nil
		}

		height := c.nextBlockHeight
		retryOnNone := true
		hash, err := c.client.BlockHashOptional(ctx, height, c.config.RetryOnError, &retryOnNone)
		if err != nil {
			return types.BlockInfo{}, err
		}
		if hash == nil {
			return types.BlockInfo{}, ErrNoBlockHash
		}
		return types.BlockInfo{Hash: *hash, Height: height}, nil
	}
}

func (c *Cursor) nextBest(ctx context.Context) (types.BlockInfo, error) {
	latest, err := c.fetchLatestFinalizedHeight(ctx)
	if err != nil {
		return types.BlockInfo{}, err
	}

	if latest >= c.currentBlockHeight {
		info, err := c.runBestHistorical(ctx)
		if err != nil {
			return types.BlockInfo{}, err
		}
		c.currentBlockHeight = info.Height
		c.blockProcessed = []types.BlockHash{info.Hash}
		return info, nil
	}

	info, err := c.runBestHead(ctx)
	if err != nil {
		return types.BlockInfo{}, err
	}
	if info.Height == c.currentBlockHeight {
		c.blockProcessed = append(c.blockProcessed, info.Hash)
	} else {
		c.blockProcessed = []types.BlockHash{info.Hash}
		c.currentBlockHeight = info.Height
	}
	return info, nil
}

func (c *Cursor) runBestHistorical(ctx context.Context) (types.BlockInfo, error) {
	height := c.currentBlockHeight
	if len(c.blockProcessed) > 0 {
		height++
	}
	hash, err := c.client.BlockHash(ctx, height, c.config.RetryOnError)
	if err != nil {
		return types.BlockInfo{}, err
	}
	return types.BlockInfo{Hash: hash, Height: height}, nil
}

func (c *Cursor) runBestHead(ctx context.Context) (types.BlockInfo, error) {
	for {
		head, err := c.client.BestHead(ctx, c.config.RetryOnError)
		if err != nil {
			return types.BlockInfo{}, err
		}

		isPastBlock := c.currentBlockHeight > head.Height
		alreadyProcessed := containsHash(c.blockProcessed, head.Hash)
		if isPastBlock || alreadyProcessed {
			subLog().Tracef("best head %d/%s already processed, polling in %s", head.Height, head.Hash.Hex(), c.config.PollInterval)
			if err := sleepCtx(ctx, c.config.PollInterval); err != nil {
				return types.BlockInfo{}, err
			}
			continue
		}

		forceRetry := true
		if len(c.blockProcessed) == 0 {
			hash, err := c.client.BlockHashOptional(ctx, c.currentBlockHeight, &forceRetry, &forceRetry)
			if err != nil {
				return types.BlockInfo{}, err
			}
			if hash == nil {
				return types.BlockInfo{}, ErrNoBlockHash
			}
			return types.BlockInfo{Hash: *hash, Height: c.currentBlockHeight}, nil
		}

		isCurrentBlock := c.currentBlockHeight == head.Height
		isNextBlock := c.currentBlockHeight+1 == head.Height
		if isCurrentBlock || isNextBlock {
			return head, nil
		}

		height := c.currentBlockHeight + 1
		hash, err := c.client.BlockHashOptional(ctx, height, &forceRetry, &forceRetry)
		if err != nil {
			return types.BlockInfo{}, err
		}
		if hash == nil {
			return types.BlockInfo{}, ErrNoBlockHash
		}
		return types.BlockInfo{Hash: *hash, Height: height}, nil
	}
}

func containsHash(hashes []types.BlockHash, target types.BlockHash) bool {
	for _, h := range hashes {
		if h == target {
			return true
		}
	}
	return false
}

func saturatingSub(h types.BlockHeight, n types.BlockHeight) types.BlockHeight {
	if h < n {
		return 0
	}
	return h - n
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
