package rpc

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/transport/mock"
)

func TestSubmitExtrinsicReturnsNodeComputedHash(t *testing.T) {
	tr := mock.New().OnJSON("author_submitExtrinsic", testHashHex)
	c := NewClient(tr, false, false)

	hash, err := c.SubmitExtrinsic(context.Background(), []byte{0x0c, 0x04, 0x04, 0x00}, nil)
	if err != nil {
		t.Fatalf("SubmitExtrinsic: %v", err)
	}
	if hash.Hex() != testHashHex {
		t.Fatalf("got %s", hash.Hex())
	}
}

func TestRotateKeysDecodesResult(t *testing.T) {
	tr := mock.New().OnJSON("author_rotateKeys", "0xaabbcc")
	c := NewClient(tr, false, false)

	keys, err := c.RotateKeys(context.Background(), nil)
	if err != nil {
		t.Fatalf("RotateKeys: %v", err)
	}
	if string(keys) != "\xaa\xbb\xcc" {
		t.Fatalf("got %x", keys)
	}
}
