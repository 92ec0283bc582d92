package transaction

import (
	"context"
	"fmt"

	"github.com/availproject/avail-go-sdk/rpc"
	"github.com/availproject/avail-go-sdk/subscription"
	"github.com/availproject/avail-go-sdk/types"
)

// Receipt is produced only once the searcher confirms the submitted
// extrinsic's inclusion: a block reference plus the matching extrinsic
// as reported by the chain.
type Receipt struct {
	Block     types.BlockInfo
	Extrinsic rpc.FetchedExtrinsic
}

// BlockState reports whether Receipt's block is still finalized,
// merely included, discarded by a re-org, or no longer exists at all —
// the durability check a caller makes after Idempotence concerns
// arise from calling FindReceipt twice.
func (r Receipt) BlockState(ctx context.Context, client Client) (types.BlockStateKind, error) {
	best, err := client.BestHead(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("transaction: fetching best head: %w", err)
	}
	if r.Block.Height > best.Height {
		return types.BlockStateDoesNotExist, nil
	}

	finalizedHash, err := client.FinalizedHead(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("transaction: fetching finalized head: %w", err)
	}
	finalized, err := client.BlockInfoAt(ctx, finalizedHash, nil)
	if err != nil {
		return 0, fmt.Errorf("transaction: resolving finalized height: %w", err)
	}

	canonicalHash, err := client.BlockHash(ctx, r.Block.Height, nil)
	if err != nil {
		return 0, fmt.Errorf("transaction: resolving canonical hash at height %d: %w", r.Block.Height, err)
	}

	if r.Block.Height <= finalized.Height {
		if canonicalHash != r.Block.Hash {
			return types.BlockStateDiscarded, nil
		}
		return types.BlockStateFinalized, nil
	}

	if canonicalHash != r.Block.Hash {
		return types.BlockStateDiscarded, nil
	}
	return types.BlockStateIncluded, nil
}

// FindReceipt walks the chain forward from submitted.Mortality.BlockHeight
// looking for the block in which submitted's nonce was consumed,
// following the exact search described by the pipeline's find-receipt
// algorithm: the first block whose account nonce exceeds the submitted
// nonce terminates the search, matched or not; a reaped account (nonce
// reset to zero) is still checked before that; the search gives up once
// the mortality window has elapsed.
func FindReceipt(ctx context.Context, client Client, submitted Submitted, useBestBlock bool) (*Receipt, error) {
	mortalityEnd := submitted.Mortality.End()
	startHeight := types.BlockHeight(submitted.Mortality.BlockHeight)

	txLog().Debugf("searching for receipt of %s from height %d to mortality end %d", submitted.Hash.Hex(), startHeight, mortalityEnd)

	cur := subscription.NewCursor(client, subscription.Config{
		UseBestBlock: useBestBlock,
		StartHeight:  &startHeight,
	})

	for {
		info, err := cur.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("transaction: advancing receipt cursor: %w", err)
		}

		stateNonce, err := client.AccountNonceAt(ctx, submitted.AccountId, info.Hash, nil)
		if err != nil {
			return nil, fmt.Errorf("transaction: fetching account nonce at block %s: %w", info.Hash.Hex(), err)
		}
		txLog().Tracef("block %d/%s: state_nonce=%d submitted_nonce=%d", info.Height, info.Hash.Hex(), stateNonce, submitted.Nonce)

		if stateNonce > submitted.Nonce {
			receipt, err := findExtrinsicInBlock(ctx, client, info, submitted.Hash)
			if err == nil && receipt != nil {
				txLog().Infof("receipt for %s found at block %d/%s", submitted.Hash.Hex(), info.Height, info.Hash.Hex())
			}
			return receipt, err
		}
		if stateNonce == 0 {
			if receipt, err := findExtrinsicInBlock(ctx, client, info, submitted.Hash); err != nil {
				return nil, err
			} else if receipt != nil {
				txLog().Infof("receipt for %s found at block %d/%s after account reap", submitted.Hash.Hex(), info.Height, info.Hash.Hex())
				return receipt, nil
			}
		}
		if info.Height >= types.BlockHeight(mortalityEnd) {
			txLog().Debugf("gave up searching for %s: reached mortality end %d", submitted.Hash.Hex(), mortalityEnd)
			return nil, nil
		}
	}
}

func findExtrinsicInBlock(ctx context.Context, client Client, info types.BlockInfo, extHash types.BlockHash) (*Receipt, error) {
	matches, err := client.FetchExtrinsics(ctx, info.Hash, rpc.ExtrinsicFilter{Hash: &extHash}, nil)
	if err != nil {
		return nil, fmt.Errorf("transaction: fetching extrinsics at block %s: %w", info.Hash.Hex(), err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &Receipt{Block: info, Extrinsic: matches[0]}, nil
}
