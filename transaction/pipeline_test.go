package transaction

import (
	"bytes"
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/crypto"
	"github.com/availproject/avail-go-sdk/rpc"
	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/transport/mock"
)

func testKeypair(t *testing.T) crypto.Keypair {
	t.Helper()
	seed := bytes.Repeat([]byte{0x07}, 32)
	kp, err := crypto.NewEd25519KeypairFromSeed(seed)
	if err != nil {
		t.Fatalf("building test keypair: %v", err)
	}
	return kp
}

func TestBuildProducesMatchingHash(t *testing.T) {
	tr := mock.New()
	tr.OnJSON("system_accountNextIndex", 3)
	tr.OnJSON("chain_getFinalizedHead", testFinalizedHashHex)
	tr.OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x64",
		"parentHash": testFinalizedHashHex,
	})
	tr.OnJSON("state_getRuntimeVersion", map[string]interface{}{
		"specVersion":       29,
		"transactionVersion": 1,
	})
	tr.OnJSON("chain_getBlockHash", testFinalizedHashHex)
	c := rpc.NewClient(tr, false, false)

	kp := testKeypair(t)
	result, err := Build(context.Background(), c, kp, submitDataCall(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.Extrinsic.IsSigned() {
		t.Fatal("expected a signed extrinsic")
	}
	if result.Hash != result.Extrinsic.Hash() {
		t.Fatalf("BuildResult.Hash disagrees with Extrinsic.Hash()")
	}

	encoded := scale.EncodeToBytes(result.Extrinsic)
	if len(encoded) == 0 {
		t.Fatal("expected non-empty encoded extrinsic")
	}
}

func TestBuildRejectsNonZeroAppIDOnNonDataCallBeforeAnyRPC(t *testing.T) {
	tr := mock.New()
	c := rpc.NewClient(tr, false, false)

	kp := testKeypair(t)
	appID := uint64(1)
	_, err := Build(context.Background(), c, kp, balanceTransferCall(), Options{AppID: &appID})
	if err == nil {
		t.Fatal("expected an error")
	}
	if tr.CallCount("system_accountNextIndex") != 0 {
		t.Fatal("must validate app_id before touching the network")
	}
}

func TestSubmitRejectsHashMismatch(t *testing.T) {
	tr := mock.New()
	tr.OnJSON("system_accountNextIndex", 0)
	tr.OnJSON("chain_getFinalizedHead", testFinalizedHashHex)
	tr.OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x1",
		"parentHash": testFinalizedHashHex,
	})
	tr.OnJSON("state_getRuntimeVersion", map[string]interface{}{
		"specVersion":        29,
		"transactionVersion": 1,
	})
	tr.OnJSON("chain_getBlockHash", testFinalizedHashHex)
	// author_submitExtrinsic returns some other hash entirely.
	tr.OnJSON("author_submitExtrinsic", testHashHexConflicting)
	c := rpc.NewClient(tr, false, false)

	kp := testKeypair(t)
	built, err := Build(context.Background(), c, kp, submitDataCall(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, err = Submit(context.Background(), c, built, nil)
	if err == nil {
		t.Fatal("expected a hash mismatch error")
	}
	if _, ok := err.(*HashMismatchError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

const testHashHexConflicting = "0x" +
	"deadbeefdeadbeef" +
	"deadbeefdeadbeef" +
	"deadbeefdeadbeef" +
	"deadbeefdeadbeef"

func TestSubmitAcceptsMatchingHash(t *testing.T) {
	tr := mock.New()
	tr.OnJSON("system_accountNextIndex", 0)
	tr.OnJSON("chain_getFinalizedHead", testFinalizedHashHex)
	tr.OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x1",
		"parentHash": testFinalizedHashHex,
	})
	tr.OnJSON("state_getRuntimeVersion", map[string]interface{}{
		"specVersion":        29,
		"transactionVersion": 1,
	})
	tr.OnJSON("chain_getBlockHash", testFinalizedHashHex)
	c := rpc.NewClient(tr, false, false)

	kp := testKeypair(t)
	built, err := Build(context.Background(), c, kp, submitDataCall(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tr.OnJSON("author_submitExtrinsic", built.Hash.Hex())

	submitted, err := Submit(context.Background(), c, built, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Hash != built.Hash {
		t.Fatalf("got hash %s, want %s", submitted.Hash.Hex(), built.Hash.Hex())
	}
	if submitted.AccountId != kp.AccountId() {
		t.Fatal("submitted account id mismatch")
	}
}
