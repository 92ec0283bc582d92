package crypto

import (
	"bytes"
	"testing"
)

func TestEd25519SignVerifyRoundTrip(t *testing.T) {
	seed := bytes.Repeat([]byte{0x01}, 32)
	kp, err := NewEd25519KeypairFromSeed(seed)
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("hello avail")
	sig, err := kp.Sign(payload)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := Verify(sig, payload, kp.AccountId())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}

	ok, err = Verify(sig, []byte("tampered"), kp.AccountId())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected signature over a different payload to fail verification")
	}
}

func TestSr25519SignVerifyRoundTrip(t *testing.T) {
	seed := bytes.Repeat([]byte{0x02}, 32)
	kp, err := NewSr25519KeypairFromSeed(seed)
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("hello avail")
	sig, err := kp.Sign(payload)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := Verify(sig, payload, kp.AccountId())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}
}

func TestEcdsaSignVerifyRoundTrip(t *testing.T) {
	seed := bytes.Repeat([]byte{0x03}, 32)
	kp, err := NewEcdsaKeypairFromBytes(seed)
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("hello avail")
	sig, err := kp.Sign(payload)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := Verify(sig, payload, kp.AccountId())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}
}

func TestKeypairSchemes(t *testing.T) {
	seed := bytes.Repeat([]byte{0x04}, 32)
	ed, _ := NewEd25519KeypairFromSeed(seed)
	sr, _ := NewSr25519KeypairFromSeed(seed)
	ec, _ := NewEcdsaKeypairFromBytes(seed)

	if ed.Scheme() != SchemeEd25519 {
		t.Fatal("wrong scheme for ed25519 keypair")
	}
	if sr.Scheme() != SchemeSr25519 {
		t.Fatal("wrong scheme for sr25519 keypair")
	}
	if ec.Scheme() != SchemeEcdsa {
		t.Fatal("wrong scheme for ecdsa keypair")
	}
}
