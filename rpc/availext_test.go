package rpc

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/transport/mock"
	"github.com/availproject/avail-go-sdk/types"
)

func TestFetchExtrinsicsUsesV1WhenAvailable(t *testing.T) {
	tr := mock.New().OnJSON("system_fetchExtrinsicsV1", []fetchedExtrinsicWire{
		{Index: 1, Hash: testHashHex, PalletID: 3, VariantID: 1},
	})
	c := NewClient(tr, false, false)

	hash, err := types.ParseBlockHash(testHashHex)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.FetchExtrinsics(context.Background(), hash, ExtrinsicFilter{}, nil)
	if err != nil {
		t.Fatalf("FetchExtrinsics: %v", err)
	}
	if len(out) != 1 || out[0].PalletID != 3 || out[0].VariantID != 1 {
		t.Fatalf("got %+v", out)
	}
	if tr.CallCount("chain_getBlock") != 0 {
		t.Fatalf("should not have fallen back to chain_getBlock")
	}
}

func TestFetchExtrinsicsFallsBackOnMethodNotFound(t *testing.T) {
	tr := mock.New().
		OnError("system_fetchExtrinsicsV1", &TransportRPCError{Code: MethodNotFoundCode, Message: "Method not found"}).
		OnJSON("chain_getBlock", map[string]interface{}{
			"block": map[string]interface{}{
				"header": map[string]interface{}{
					"number":     "0x1",
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
	palletID := uint8(4)
	out, err := c.FetchExtrinsics(context.Background(), hash, ExtrinsicFilter{PalletID: &palletID}, nil)
	if err != nil {
		t.Fatalf("FetchExtrinsics: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d extrinsics", len(out))
	}
	if out[0].PalletID != 4 || out[0].VariantID != 0 {
		t.Fatalf("got %+v", out[0])
	}
	if tr.CallCount("chain_getBlock") != 1 {
		t.Fatal("expected fallback to chain_getBlock")
	}
}

func TestFetchExtrinsicsPropagatesOtherErrors(t *testing.T) {
	tr := mock.New().OnError("system_fetchExtrinsicsV1", &TransportRPCError{Code: -32000, Message: "server error"})
	c := NewClient(tr, false, false)

	_, err := c.FetchExtrinsics(context.Background(), types.BlockHash{}, ExtrinsicFilter{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if tr.CallCount("chain_getBlock") != 0 {
		t.Fatal("should not fall back on a non-MethodNotFound error")
	}
}

func TestFetchExtrinsicsLegacyFiltersByPalletID(t *testing.T) {
	tr := mock.New().
		OnError("system_fetchExtrinsicsV1", &TransportRPCError{Code: MethodNotFoundCode, Message: "Method not found"}).
		OnJSON("chain_getBlock", map[string]interface{}{
			"block": map[string]interface{}{
				"header": map[string]interface{}{
					"number":     "0x1",
					"parentHash": testHashHex,
				},
				"extrinsics": []string{"0x0c040400"},
			},
		})
	c := NewClient(tr, false, false)

	otherPallet := uint8(9)
	out, err := c.FetchExtrinsics(context.Background(), types.BlockHash{}, ExtrinsicFilter{PalletID: &otherPallet}, nil)
	if err != nil {
		t.Fatalf("FetchExtrinsics: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %d", len(out))
	}
}
