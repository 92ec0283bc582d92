// Package mock is an in-process Transport stub for unit tests in rpc,
// subscription, and transaction: a table-driven request→response map,
// the in-process analogue of the teacher's rpctest harness (which
// spins up a real node) generalized to "answer canned RPC responses"
// since this module's core must be testable without a live chain.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Response is either a raw JSON result or an error to return for one
// matched call.
type Response struct {
	Result json.RawMessage
	Err    error
}

// Transport answers calls from a fixed table keyed by method name. Each
// method may have a queue of responses consumed in order (so a test can
// script a sequence, e.g. "not found" then "found" for polling code);
// once a method's queue is exhausted, the last response repeats.
type Transport struct {
	mu       sync.Mutex
	handlers map[string][]Response
	calls    map[string]int
	onCall   func(method string, params []interface{})
}

// New builds an empty mock transport; use On to register responses.
func New() *Transport {
	return &Transport{
		handlers: make(map[string][]Response),
		calls:    make(map[string]int),
	}
}

// On queues resp as the next response for method.
func (t *Transport) On(method string, resp Response) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[method] = append(t.handlers[method], resp)
	return t
}

// OnJSON queues a successful response for method, marshaling value to
// JSON.
func (t *Transport) OnJSON(method string, value interface{}) *Transport {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("mock: marshaling response for %s: %v", method, err))
	}
	return t.On(method, Response{Result: raw})
}

// OnError queues an error response for method.
func (t *Transport) OnError(method string, err error) *Transport {
	return t.On(method, Response{Err: err})
}

// OnCall registers an observer invoked (with method and params) on
// every Call, for assertions about what was actually requested.
func (t *Transport) OnCall(fn func(method string, params []interface{})) *Transport {
	t.onCall = fn
	return t
}

// CallCount reports how many times method has been called so far.
func (t *Transport) CallCount(method string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[method]
}

func (t *Transport) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	t.mu.Lock()
	if t.onCall != nil {
		t.onCall(method, params)
	}
	queue := t.handlers[method]
	idx := t.calls[method]
	t.calls[method] = idx + 1
	t.mu.Unlock()

	if len(queue) == 0 {
		return nil, fmt.Errorf("mock: no response registered for method %q", method)
	}
	if idx >= len(queue) {
		idx = len(queue) - 1
	}
	resp := queue[idx]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Result, nil
}

func (t *Transport) Close() error { return nil }
