package transaction

import (
	"context"

	"github.com/availproject/avail-go-sdk/crypto"
	"github.com/availproject/avail-go-sdk/types"
)

// Submitted records everything needed to later locate a transaction's
// receipt: its identity hash, the account and nonce it was submitted
// under, and the mortality window it was signed against.
type Submitted struct {
	Hash      types.BlockHash
	Nonce     uint64
	AccountId types.AccountId
	Mortality types.Mortality
}

// SubmitCall builds and submits call in one step, the common case of a
// caller that does not need to inspect the assembled extrinsic before
// it goes out.
func SubmitCall(ctx context.Context, client Client, keypair crypto.Keypair, call types.Call, opts Options) (Submitted, error) {
	built, err := Build(ctx, client, keypair, call, opts)
	if err != nil {
		return Submitted{}, err
	}
	return Submit(ctx, client, built, nil)
}
