package transaction

import (
	"context"

	"github.com/decred/slog"

	ilog "github.com/availproject/avail-go-sdk/internal/log"
	"github.com/availproject/avail-go-sdk/rpc"
	"github.com/availproject/avail-go-sdk/types"
)

// txLog returns this package's tagged logger, fetched fresh at each
// call site so it always reflects the backend currently wired via
// ilog.UseBackend/InitLogRotator.
func txLog() slog.Logger { return ilog.Tagged("TXNP") }

// Client is the slice of *rpc.Client the transaction pipeline needs to
// build, submit, and track extrinsics. *rpc.Client satisfies it
// directly; tests substitute a narrower fake.
type Client interface {
	RuntimeInfo(ctx context.Context) (rpc.RuntimeInfo, error)
	FinalizedHead(ctx context.Context, retryOnError *bool) (types.BlockHash, error)
	BlockInfoAt(ctx context.Context, hash types.BlockHash, retryOnError *bool) (types.BlockInfo, error)
	BlockHash(ctx context.Context, height types.BlockHeight, retryOnError *bool) (types.BlockHash, error)
	BlockHashOptional(ctx context.Context, height types.BlockHeight, retryOnError, retryOnNone *bool) (*types.BlockHash, error)
	BestHead(ctx context.Context, retryOnError *bool) (types.BlockInfo, error)
	AccountNextIndex(ctx context.Context, ss58Address string, retryOnError *bool) (uint64, error)
	AccountNonceAt(ctx context.Context, account types.AccountId, at types.BlockHash, retryOnError *bool) (uint64, error)
	SubmitExtrinsic(ctx context.Context, encoded []byte, retryOnError *bool) (types.BlockHash, error)
	FetchExtrinsics(ctx context.Context, at types.BlockHash, filter rpc.ExtrinsicFilter, retryOnError *bool) ([]rpc.FetchedExtrinsic, error)
}
