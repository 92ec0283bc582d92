package rpc

import (
	"context"
	"errors"
	"testing"

	"github.com/availproject/avail-go-sdk/transport/mock"
)

func TestClientCallDispatchesAndReturnsResult(t *testing.T) {
	tr := mock.New().OnJSON("system_chain", "Avail Development Network")
	c := NewClient(tr, false, false)

	var name string
	if err := c.call(context.Background(), "system_chain", nil, &name); err != nil {
		t.Fatalf("call: %v", err)
	}
	if name != "Avail Development Network" {
		t.Fatalf("got %q", name)
	}
}

func TestClientCallWrapsTransportError(t *testing.T) {
	tr := mock.New().OnError("system_chain", errors.New("boom"))
	c := NewClient(tr, false, false)

	var name string
	err := c.call(context.Background(), "system_chain", nil, &name)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestClientPendingCallResult(t *testing.T) {
	tr := mock.New().OnJSON("system_chain", "Avail")
	c := NewClient(tr, false, false)

	pending := c.Call(context.Background(), "system_chain", nil)
	raw, err := pending.Result(context.Background())
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if string(raw) != `"Avail"` {
		t.Fatalf("got %s", raw)
	}
}

func TestClientPendingCallResultRespectsContextCancel(t *testing.T) {
	c := &Client{}
	p := &PendingCall{result: make(chan pendingResult)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Result(ctx)
	if err != context.Canceled {
		t.Fatalf("got %v", err)
	}
	_ = c
}

func TestRuntimeInfoCachesAfterFirstFetch(t *testing.T) {
	tr := mock.New()
	tr.OnJSON("state_getRuntimeVersion", map[string]interface{}{
		"specVersion":        uint32(42),
		"transactionVersion": uint32(1),
	})
	tr.OnJSON("chain_getBlockHash", "0x"+repeat("00", 32))
	c := NewClient(tr, false, false)

	info, err := c.RuntimeInfo(context.Background())
	if err != nil {
		t.Fatalf("RuntimeInfo: %v", err)
	}
	if info.SpecVersion != 42 || info.TxVersion != 1 {
		t.Fatalf("got %+v", info)
	}

	if _, err := c.RuntimeInfo(context.Background()); err != nil {
		t.Fatalf("cached RuntimeInfo: %v", err)
	}
	if got := tr.CallCount("state_getRuntimeVersion"); got != 1 {
		t.Fatalf("expected one underlying call, got %d", got)
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
