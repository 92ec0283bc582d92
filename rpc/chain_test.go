package rpc

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/transport/mock"
	"github.com/availproject/avail-go-sdk/types"
)

const testHashHex = "0x" +
	"f5b1f5b1f5b1f5b1" +
	"f5b1f5b1f5b1f5b1" +
	"f5b1f5b1f5b1f5b1" +
	"f5b1f5b1f5b1f5b1"

func TestBlockHashResolvesHeight(t *testing.T) {
	tr := mock.New().OnJSON("chain_getBlockHash", testHashHex)
	c := NewClient(tr, false, false)

	hash, err := c.BlockHash(context.Background(), 100, nil)
	if err != nil {
		t.Fatalf("BlockHash: %v", err)
	}
	if hash.Hex() != testHashHex {
		t.Fatalf("got %s", hash.Hex())
	}
}

func TestBlockHashOptionalReturnsNilOnNullResult(t *testing.T) {
	tr := mock.New().OnJSON("chain_getBlockHash", nil)
	c := NewClient(tr, false, false)

	retryOnNone := false
	hash, err := c.BlockHashOptional(context.Background(), 999999, nil, &retryOnNone)
	if err != nil {
		t.Fatalf("BlockHashOptional: %v", err)
	}
	if hash != nil {
		t.Fatalf("expected nil, got %v", hash)
	}
}

func TestFinalizedHead(t *testing.T) {
	tr := mock.New().OnJSON("chain_getFinalizedHead", testHashHex)
	c := NewClient(tr, false, false)

	hash, err := c.FinalizedHead(context.Background(), nil)
	if err != nil {
		t.Fatalf("FinalizedHead: %v", err)
	}
	if hash.Hex() != testHashHex {
		t.Fatalf("got %s", hash.Hex())
	}
}

func TestBlockInfoAtDecodesHexBlockNumber(t *testing.T) {
	tr := mock.New().OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x2a",
		"parentHash": testHashHex,
	})
	c := NewClient(tr, false, false)

	hash, err := types.ParseBlockHash(testHashHex)
	if err != nil {
		t.Fatal(err)
	}
	info, err := c.BlockInfoAt(context.Background(), hash, nil)
	if err != nil {
		t.Fatalf("BlockInfoAt: %v", err)
	}
	if info.Height != 42 {
		t.Fatalf("got height %d", info.Height)
	}
	if info.Hash != hash {
		t.Fatalf("hash mismatch")
	}
}

func TestBestHeadResolvesHashFromHeight(t *testing.T) {
	tr := mock.New()
	tr.OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x10",
		"parentHash": testHashHex,
	})
	tr.OnJSON("chain_getBlockHash", testHashHex)
	c := NewClient(tr, false, false)

	info, err := c.BestHead(context.Background(), nil)
	if err != nil {
		t.Fatalf("BestHead: %v", err)
	}
	if info.Height != 16 {
		t.Fatalf("got height %d", info.Height)
	}
}

func TestGetBlockDecodesExtrinsicList(t *testing.T) {
	tr := mock.New().OnJSON("chain_getBlock", map[string]interface{}{
		"block": map[string]interface{}{
			"header": map[string]interface{}{
				"number":     "0x5",
				"parentHash": testHashHex,
			},
			"extrinsics": []string{"0x0c040400"},
		},
	})
	c := NewClient(tr, false, false)

	hash, err := types.ParseBlockHash(testHashHex)
	if err != nil {
		t.Fatal(err)
	}
	block, err := c.GetBlock(context.Background(), hash, nil)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if block.Number != 5 {
		t.Fatalf("got number %d", block.Number)
	}
	if len(block.Extrinsics) != 1 || block.Extrinsics[0] != "0x0c040400" {
		t.Fatalf("got extrinsics %v", block.Extrinsics)
	}
}
