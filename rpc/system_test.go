package rpc

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/transport/mock"
	"github.com/availproject/avail-go-sdk/types"
)

func TestHealthDecodesFields(t *testing.T) {
	tr := mock.New().OnJSON("system_health", map[string]interface{}{
		"peers":           3,
		"isSyncing":       false,
		"shouldHavePeers": true,
	})
	c := NewClient(tr, false, false)

	h, err := c.Health(context.Background(), nil)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Peers != 3 || h.IsSyncing || !h.ShouldHavePeers {
		t.Fatalf("got %+v", h)
	}
}

func TestPeersExtractsPeerIDs(t *testing.T) {
	tr := mock.New().OnJSON("system_peers", []map[string]interface{}{
		{"peerId": "12D3KooWA"},
		{"peerId": "12D3KooWB"},
	})
	c := NewClient(tr, false, false)

	peers, err := c.Peers(context.Background(), nil)
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 2 || peers[0] != "12D3KooWA" || peers[1] != "12D3KooWB" {
		t.Fatalf("got %v", peers)
	}
}

func TestAccountNonceAtDecodesLeadingU32(t *testing.T) {
	tr := mock.New().OnJSON("state_getStorage", "0x05000000deadbeef")
	c := NewClient(tr, false, false)

	var account types.AccountId
	nonce, err := c.AccountNonceAt(context.Background(), account, types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("AccountNonceAt: %v", err)
	}
	if nonce != 5 {
		t.Fatalf("got nonce %d", nonce)
	}
}

func TestAccountNonceAtReturnsZeroWhenAbsent(t *testing.T) {
	tr := mock.New().OnJSON("state_getStorage", nil)
	c := NewClient(tr, false, false)

	var account types.AccountId
	nonce, err := c.AccountNonceAt(context.Background(), account, types.BlockHash{}, nil)
	if err != nil {
		t.Fatalf("AccountNonceAt: %v", err)
	}
	if nonce != 0 {
		t.Fatalf("got nonce %d", nonce)
	}
}
