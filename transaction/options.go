// Package transaction builds, signs, submits, and tracks the receipt of
// extrinsics: the Go counterpart of the teacher's WIF-backed signing
// helpers wired up to this module's RPC facade instead of a local
// wallet file.
package transaction

import (
	"context"
	"fmt"
	"math/big"

	"github.com/availproject/avail-go-sdk/avail"
	"github.com/availproject/avail-go-sdk/pallets"
	"github.com/availproject/avail-go-sdk/types"
)

// defaultSS58Prefix is used to render the signer's account as an SS58
// address for system_accountNextIndex when Options.SS58Prefix is unset.
const defaultSS58Prefix = 42

// MortalityOptions pins a transaction's validity window. A nil
// BlockHeight anchors at the chain's current finalized head.
type MortalityOptions struct {
	Period      uint64
	BlockHeight *uint32
}

// Options are the caller-facing, possibly-partial knobs for a single
// transaction; RefineOptions fills in every default and enforces the
// app_id hard rule before any network interaction occurs.
type Options struct {
	AppID      *uint64
	Nonce      *uint64
	Tip        *types.Amount
	Mortality  *MortalityOptions
	SS58Prefix uint16
}

// RefinedOptions is Options after defaulting and validation: every
// field concrete, ready to assemble into ExtrinsicExtra/Additional.
type RefinedOptions struct {
	AppID     uint64
	Nonce     uint64
	Tip       types.Amount
	Mortality types.Mortality
}

var submitDataPalletID, submitDataVariantID = pallets.SubmitData{}.PalletID(), pallets.SubmitData{}.VariantID()

// RefineOptions defaults every unset field of opts and enforces the
// hard rule that a non-zero app id may only accompany a
// DataAvailability.submitData call — checked first, before any RPC
// call, exactly as the pipeline's build step requires.
func RefineOptions(ctx context.Context, client Client, account types.AccountId, call types.Call, opts Options) (RefinedOptions, error) {
	appID := uint64(0)
	if opts.AppID != nil {
		appID = *opts.AppID
	}
	if appID != 0 && !(call.PalletID == submitDataPalletID && call.VariantID == submitDataVariantID) {
		txLog().Warnf("rejecting transaction: app_id %d set on non-DataAvailability.submitData call (pallet=%d variant=%d)", appID, call.PalletID, call.VariantID)
		return RefinedOptions{}, &avail.InvalidTransactionError{Reason: "app_id non-zero on non-data call"}
	}

	nonce := uint64(0)
	if opts.Nonce != nil {
		nonce = *opts.Nonce
	} else {
		prefix := opts.SS58Prefix
		if prefix == 0 {
			prefix = defaultSS58Prefix
		}
		n, err := client.AccountNextIndex(ctx, account.SS58(prefix), nil)
		if err != nil {
			return RefinedOptions{}, fmt.Errorf("transaction: fetching account nonce: %w", err)
		}
		nonce = n
	}

	tip := types.NewAmountFromLenna(big.NewInt(0))
	if opts.Tip != nil {
		tip = *opts.Tip
	}

	mortality, err := resolveMortality(ctx, client, opts.Mortality)
	if err != nil {
		return RefinedOptions{}, err
	}

	return RefinedOptions{AppID: appID, Nonce: nonce, Tip: tip, Mortality: mortality}, nil
}

func resolveMortality(ctx context.Context, client Client, opts *MortalityOptions) (types.Mortality, error) {
	period := uint64(types.DefaultMortalityPeriod)
	if opts != nil && opts.Period != 0 {
		period = opts.Period
	}

	if opts != nil && opts.BlockHeight != nil {
		height := *opts.BlockHeight
		hash, err := client.BlockHash(ctx, types.BlockHeight(height), nil)
		if err != nil {
			return types.Mortality{}, fmt.Errorf("transaction: resolving mortality anchor block: %w", err)
		}
		return types.Mortality{Period: period, BlockHash: hash, BlockHeight: height}, nil
	}

	hash, err := client.FinalizedHead(ctx, nil)
	if err != nil {
		return types.Mortality{}, fmt.Errorf("transaction: fetching finalized head for mortality anchor: %w", err)
	}
	info, err := client.BlockInfoAt(ctx, hash, nil)
	if err != nil {
		return types.Mortality{}, fmt.Errorf("transaction: resolving finalized head height: %w", err)
	}
	return types.Mortality{Period: period, BlockHash: hash, BlockHeight: uint32(info.Height)}, nil
}
