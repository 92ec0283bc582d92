// Package crypto signs and verifies extrinsic payloads under the three
// schemes MultiSignature supports, generalizing the teacher's WIF
// private-key-to-signature helpers (dcrutil.WIF, exccutil.WIF) from a
// single secp256k1 scheme to Substrate's Ed25519/Sr25519/Ecdsa trio.
package crypto

import (
	"crypto/ed25519"
	"fmt"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/availproject/avail-go-sdk/types"
)

// Scheme identifies one of the three signature algorithms a Keypair
// implements.
type Scheme uint8

const (
	SchemeEd25519 Scheme = iota
	SchemeSr25519
	SchemeEcdsa
)

// signingContextLabel is Substrate's fixed merlin transcript label for
// extrinsic signing under sr25519.
var signingContextLabel = []byte("substrate")

// Keypair signs extrinsic payloads and derives the AccountId/MultiAddress
// that must appear alongside the resulting signature.
type Keypair interface {
	Scheme() Scheme
	AccountId() types.AccountId
	Sign(payload []byte) (types.MultiSignature, error)
}

// Ed25519Keypair wraps a standard library ed25519 key pair.
type Ed25519Keypair struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// NewEd25519KeypairFromSeed derives an Ed25519Keypair from a 32-byte
// seed, matching the teacher's from-raw-private-key WIF constructors.
func NewEd25519KeypairFromSeed(seed []byte) (*Ed25519Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("crypto: ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Ed25519Keypair{public: priv.Public().(ed25519.PublicKey), private: priv}, nil
}

func (k *Ed25519Keypair) Scheme() Scheme { return SchemeEd25519 }

func (k *Ed25519Keypair) AccountId() types.AccountId {
	var id types.AccountId
	copy(id[:], k.public)
	return id
}

func (k *Ed25519Keypair) Sign(payload []byte) (types.MultiSignature, error) {
	sig := ed25519.Sign(k.private, payload)
	var out [64]byte
	copy(out[:], sig)
	return types.NewEd25519Signature(out), nil
}

// Sr25519Keypair wraps a go-schnorrkel mini secret key.
type Sr25519Keypair struct {
	secret *schnorrkel.SecretKey
	public *schnorrkel.PublicKey
}

// NewSr25519KeypairFromSeed derives an Sr25519Keypair from a 32-byte
// seed via schnorrkel's standard mini-secret-key expansion.
func NewSr25519KeypairFromSeed(seed []byte) (*Sr25519Keypair, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("crypto: sr25519 seed must be 32 bytes, got %d", len(seed))
	}
	var raw [32]byte
	copy(raw[:], seed)

	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("crypto: deriving sr25519 mini secret key: %w", err)
	}
	secret := mini.ExpandEd25519()
	public, err := secret.Public()
	if err != nil {
		return nil, fmt.Errorf("crypto: deriving sr25519 public key: %w", err)
	}
	return &Sr25519Keypair{secret: secret, public: public}, nil
}

func (k *Sr25519Keypair) Scheme() Scheme { return SchemeSr25519 }

func (k *Sr25519Keypair) AccountId() types.AccountId {
	var id types.AccountId
	enc := k.public.Encode()
	copy(id[:], enc[:])
	return id
}

func (k *Sr25519Keypair) Sign(payload []byte) (types.MultiSignature, error) {
	transcript := schnorrkel.NewSigningContext(signingContextLabel, payload)
	sig, err := k.secret.Sign(transcript)
	if err != nil {
		return types.MultiSignature{}, fmt.Errorf("crypto: sr25519 sign: %w", err)
	}
	enc := sig.Encode()
	return types.NewSr25519Signature(enc), nil
}

// EcdsaKeypair wraps a secp256k1 private key, signing over the
// blake2b-256 digest of the payload the way Substrate's Ecdsa scheme
// does (secp256k1 signatures are always taken over a 32-byte digest).
type EcdsaKeypair struct {
	private *secp256k1.PrivateKey
}

// NewEcdsaKeypairFromBytes derives an EcdsaKeypair from a 32-byte raw
// private key.
func NewEcdsaKeypairFromBytes(b []byte) (*EcdsaKeypair, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("crypto: ecdsa private key must be 32 bytes, got %d", len(b))
	}
	priv := secp256k1.PrivKeyFromBytes(b)
	return &EcdsaKeypair{private: priv}, nil
}

func (k *EcdsaKeypair) Scheme() Scheme { return SchemeEcdsa }

// AccountId for the Ecdsa scheme is blake2b-256 of the 33-byte
// compressed public key, per the MultiSigner::Ecdsa => AccountId32
// conversion this module's chains use.
func (k *EcdsaKeypair) AccountId() types.AccountId {
	compressed := k.private.PubKey().SerializeCompressed()
	sum := blake2b.Sum256(compressed)
	return types.AccountId(sum)
}

func (k *EcdsaKeypair) Sign(payload []byte) (types.MultiSignature, error) {
	digest := blake2b.Sum256(payload)
	compact := ecdsa.SignCompact(k.private, digest[:], false)
	if len(compact) != 65 {
		return types.MultiSignature{}, fmt.Errorf("crypto: unexpected compact signature length %d", len(compact))
	}
	// secp256k1.SignCompact puts the recovery id in the first byte;
	// Substrate's Ecdsa MultiSignature wants 64 bytes of (r, s) followed
	// by the recovery id.
	var out [65]byte
	copy(out[:64], compact[1:])
	out[64] = compact[0] - 27 // SignCompact biases the id by compactSigMagicOffset (27)
	return types.NewEcdsaSignature(out), nil
}
