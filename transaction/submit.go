package transaction

import (
	"context"
	"fmt"

	"github.com/availproject/avail-go-sdk/scale"
)

// HashMismatchError reports that the node's reported transaction hash
// disagreed with the hash computed locally before submission — a sign
// of transport corruption or a node disagreeing about the wire format,
// never expected in normal operation.
type HashMismatchError struct {
	Local, Remote string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("transaction: node-reported hash %s does not match locally computed hash %s", e.Remote, e.Local)
}

// Submit encodes built.Extrinsic and calls author_submitExtrinsic,
// verifying that the hash the node echoes back matches the one
// computed during Build. A mismatch is always an error: the two must
// be computed from identical bytes.
func Submit(ctx context.Context, client Client, built BuildResult, retryOnError *bool) (Submitted, error) {
	encoded := scale.EncodeToBytes(built.Extrinsic)

	txLog().Debugf("submitting extrinsic %s (%d bytes)", built.Hash.Hex(), len(encoded))
	remoteHash, err := client.SubmitExtrinsic(ctx, encoded, retryOnError)
	if err != nil {
		return Submitted{}, fmt.Errorf("transaction: submitting extrinsic: %w", err)
	}
	if remoteHash != built.Hash {
		txLog().Warnf("hash mismatch submitting extrinsic: local=%s remote=%s", built.Hash.Hex(), remoteHash.Hex())
		return Submitted{}, &HashMismatchError{Local: built.Hash.Hex(), Remote: remoteHash.Hex()}
	}
	txLog().Infof("submitted extrinsic %s", built.Hash.Hex())

	return Submitted{
		Hash:      built.Hash,
		Nonce:     built.Refined.Nonce,
		AccountId: built.Extrinsic.Signed.Address.Id,
		Mortality: built.Refined.Mortality,
	}, nil
}
