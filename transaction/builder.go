package transaction

import (
	"context"
	"fmt"

	"github.com/availproject/avail-go-sdk/crypto"
	"github.com/availproject/avail-go-sdk/types"
)

// BuildResult is a fully assembled, signed extrinsic ready for
// submission, along with the locally computed identity the node's
// response will be checked against.
type BuildResult struct {
	Extrinsic types.Extrinsic
	Hash      types.BlockHash
	Refined   RefinedOptions
}

// Build refines opts, assembles the extrinsic additional and extra
// fields, computes and signs the payload, and returns the fully signed
// extrinsic plus its locally computed hash. No network call after this
// point can change what Hash reports: it is fixed the moment the
// signature is produced.
func Build(ctx context.Context, client Client, keypair crypto.Keypair, call types.Call, opts Options) (BuildResult, error) {
	account := keypair.AccountId()

	refined, err := RefineOptions(ctx, client, account, call, opts)
	if err != nil {
		return BuildResult{}, err
	}

	runtime, err := client.RuntimeInfo(ctx)
	if err != nil {
		return BuildResult{}, fmt.Errorf("transaction: fetching runtime info: %w", err)
	}

	extra := types.ExtrinsicExtra{
		Era:   refined.Mortality.Era(),
		Nonce: refined.Nonce,
		Tip:   refined.Tip,
		AppID: refined.AppID,
	}
	additional := types.ExtrinsicAdditional{
		SpecVersion: runtime.SpecVersion,
		TxVersion:   runtime.TxVersion,
		GenesisHash: runtime.GenesisHash,
		ForkHash:    refined.Mortality.BlockHash,
	}

	payload, err := types.SigningPayload(call, extra, additional)
	if err != nil {
		return BuildResult{}, fmt.Errorf("transaction: assembling signing payload: %w", err)
	}
	signature, err := keypair.Sign(payload)
	if err != nil {
		return BuildResult{}, fmt.Errorf("transaction: signing payload: %w", err)
	}

	extrinsic := types.Extrinsic{
		Signed: &types.SignedFields{
			Address:   types.NewMultiAddressId(account),
			Signature: signature,
			Extra:     extra,
		},
		Call: call,
	}

	hash := extrinsic.Hash()
	txLog().Debugf("built extrinsic %s: app_id=%d nonce=%d tip=%s mortality_end=%d",
		hash.Hex(), refined.AppID, refined.Nonce, refined.Tip, refined.Mortality.End())

	return BuildResult{Extrinsic: extrinsic, Hash: hash, Refined: refined}, nil
}
