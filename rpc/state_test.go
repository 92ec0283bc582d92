package rpc

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/storage"
	"github.com/availproject/avail-go-sdk/transport/mock"
	"github.com/availproject/avail-go-sdk/types"
)

func TestGetStorageDecodesHexValue(t *testing.T) {
	tr := mock.New().OnJSON("state_getStorage", "0x2a000000")
	c := NewClient(tr, false, false)

	value, err := c.GetStorage(context.Background(), storage.Address("key"), types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("GetStorage: %v", err)
	}
	if string(value) != "\x2a\x00\x00\x00" {
		t.Fatalf("got %x", value)
	}
}

func TestGetStorageReturnsNilOnAbsentKey(t *testing.T) {
	tr := mock.New().OnJSON("state_getStorage", nil)
	c := NewClient(tr, false, false)

	value, err := c.GetStorage(context.Background(), storage.Address("key"), types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("GetStorage: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil, got %x", value)
	}
}

func TestGetKeysPagedDecodesHexKeys(t *testing.T) {
	tr := mock.New().OnJSON("state_getKeysPaged", []string{"0x0102", "0x0304"})
	c := NewClient(tr, false, false)

	keys, err := c.GetKeysPaged(context.Background(), storage.Address("prefix"), 10, nil, types.BlockHash{})
	if err != nil {
		t.Fatalf("GetKeysPaged: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %d keys", len(keys))
	}
	if string(keys[0]) != "\x01\x02" || string(keys[1]) != "\x03\x04" {
		t.Fatalf("got %x %x", keys[0], keys[1])
	}
}

func TestGetMetadataOmitsBlockHashWhenZero(t *testing.T) {
	var gotParams []interface{}
	tr := mock.New().
		OnCall(func(method string, params []interface{}) {
			if method == "state_getMetadata" {
				gotParams = params
			}
		}).
		OnJSON("state_getMetadata", "0x0102")
	c := NewClient(tr, false, false)

	if _, err := c.GetMetadata(context.Background(), types.BlockHash{}, nil); err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if len(gotParams) != 0 {
		t.Fatalf("expected no params for zero block hash, got %v", gotParams)
	}
}

func TestGetMetadataCachesByGenesisHash(t *testing.T) {
	tr := mock.New().
		OnJSON("state_getRuntimeVersion", map[string]interface{}{"specVersion": 7, "transactionVersion": 1}).
		OnJSON("chain_getBlockHash", testHashHex).
		OnJSON("state_getMetadata", "0x0102")
	c := NewClient(tr, false, false)

	first, err := c.GetMetadata(context.Background(), types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	second, err := c.GetMetadata(context.Background(), types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("GetMetadata (cached): %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("got %x and %x", first, second)
	}
	if got := tr.CallCount("state_getMetadata"); got != 1 {
		t.Fatalf("expected state_getMetadata to be called once (second call served from cache), got %d", got)
	}
}

func TestGetMetadataBypassesCacheForExplicitBlockHash(t *testing.T) {
	hash, err := types.ParseBlockHash(testHashHex)
	if err != nil {
		t.Fatal(err)
	}
	tr := mock.New().OnJSON("state_getMetadata", "0x0102")
	c := NewClient(tr, false, false)

	if _, err := c.GetMetadata(context.Background(), hash, nil); err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if _, err := c.GetMetadata(context.Background(), hash, nil); err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got := tr.CallCount("state_getMetadata"); got != 2 {
		t.Fatalf("expected every explicit-hash call to skip the cache, got %d calls", got)
	}
}

func TestRuntimeCallIncludesBlockHashWhenSet(t *testing.T) {
	hash, err := types.ParseBlockHash(testHashHex)
	if err != nil {
		t.Fatal(err)
	}
	var gotParams []interface{}
	tr := mock.New().
		OnCall(func(method string, params []interface{}) {
			if method == "state_call" {
				gotParams = params
			}
		}).
		OnJSON("state_call", "0x00")
	c := NewClient(tr, false, false)

	if _, err := c.RuntimeCall(context.Background(), "Core_version", []byte{1, 2}, hash, nil); err != nil {
		t.Fatalf("RuntimeCall: %v", err)
	}
	if len(gotParams) != 3 {
		t.Fatalf("expected 3 params, got %v", gotParams)
	}
	if gotParams[2] != hash.Hex() {
		t.Fatalf("expected block hash param, got %v", gotParams[2])
	}
}
