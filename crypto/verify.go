package crypto

import (
	"crypto/ed25519"
	"fmt"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/availproject/avail-go-sdk/types"
)

// Verify checks sig against payload for the scheme named by sig.Kind,
// with id as the public key. Ecdsa verification recovers the signer's public key from the
// signature and compares its derived account id, since Substrate's
// Ecdsa MultiSigner is itself derived from the public key rather than
// carried alongside the signature.
func Verify(sig types.MultiSignature, payload []byte, id types.AccountId) (bool, error) {
	switch sig.Kind {
	case types.MultiSignatureEd25519:
		return ed25519.Verify(ed25519.PublicKey(id[:]), payload, sig.Ed25519[:]), nil
	case types.MultiSignatureSr25519:
		return verifySr25519(sig, payload, id)
	case types.MultiSignatureEcdsa:
		return verifyEcdsa(sig, payload, id)
	default:
		return false, fmt.Errorf("crypto: unknown signature kind %d", sig.Kind)
	}
}

func verifySr25519(sig types.MultiSignature, payload []byte, id types.AccountId) (bool, error) {
	var pubBytes [32]byte
	copy(pubBytes[:], id[:])
	pub := &schnorrkel.PublicKey{}
	if err := pub.Decode(pubBytes); err != nil {
		return false, fmt.Errorf("crypto: decoding sr25519 public key: %w", err)
	}

	var sigBytes [64]byte
	copy(sigBytes[:], sig.Sr25519[:])
	var signature schnorrkel.Signature
	if err := signature.Decode(sigBytes); err != nil {
		return false, fmt.Errorf("crypto: decoding sr25519 signature: %w", err)
	}

	transcript := schnorrkel.NewSigningContext(signingContextLabel, payload)
	return pub.Verify(&signature, transcript)
}

func verifyEcdsa(sig types.MultiSignature, payload []byte, id types.AccountId) (bool, error) {
	digest := blake2b.Sum256(payload)

	compact := make([]byte, 65)
	compact[0] = sig.Ecdsa[64] + 27
	copy(compact[1:], sig.Ecdsa[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return false, fmt.Errorf("crypto: recovering ecdsa public key: %w", err)
	}

	sum := blake2b.Sum256(pub.SerializeCompressed())
	return types.AccountId(sum) == id, nil
}
