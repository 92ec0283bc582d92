// Package httpws provides the transports this module ships out of the
// box: a unary HTTP POST JSON-RPC 2.0 client, and a duplex
// gorilla/websocket client for subscriptions that want push-based
// notifications instead of polling.
package httpws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/availproject/avail-go-sdk/rpc"
)

type jsonRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type jsonRPCResponse struct {
	JSONRPC string                  `json:"jsonrpc"`
	ID      uint64                  `json:"id"`
	Result  json.RawMessage         `json:"result"`
	Error   *rpc.TransportRPCError  `json:"error"`
}

// HTTPTransport implements rpc.Transport over a single HTTP endpoint,
// one POST request per call.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
	nextID   uint64
}

// NewHTTPTransport builds an HTTPTransport against endpoint using
// client, or http.DefaultClient if nil.
func NewHTTPTransport(endpoint string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{endpoint: endpoint, client: client}
}

func (t *HTTPTransport) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	id := atomic.AddUint64(&t.nextID, 1)
	reqBody, err := json.Marshal(jsonRPCRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("httpws: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("httpws: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpws: %s: %w", method, err)
	}
	defer resp.Body.Close()

	var rpcResp jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("httpws: decoding response for %s: %w", method, err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

func (t *HTTPTransport) Close() error { return nil }
