package httpws

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/decred/go-socks/socks"
)

// ProxyConfig describes an optional SOCKS5 proxy (e.g. Tor) to dial the
// node endpoint through, the same knob the teacher's wallet/RPC clients
// expose for users who don't want to leak their node's address to their
// network operator.
type ProxyConfig struct {
	Addr     string
	Username string
	Password string
}

// NewProxiedHTTPClient builds an *http.Client that dials through proxy
// instead of connecting directly, for use with NewHTTPTransport.
func NewProxiedHTTPClient(proxy ProxyConfig, timeout time.Duration) *http.Client {
	dialer := &socks.Proxy{
		Addr:     proxy.Addr,
		Username: proxy.Username,
		Password: proxy.Password,
	}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// ProxyDialer adapts ProxyConfig to the func(network, addr string)
// (net.Conn, error) shape gorilla/websocket.Dialer.NetDial expects, so
// WSTransport connections can be tunneled the same way HTTP ones are.
func ProxyDialer(proxy ProxyConfig) func(network, addr string) (net.Conn, error) {
	dialer := &socks.Proxy{
		Addr:     proxy.Addr,
		Username: proxy.Username,
		Password: proxy.Password,
	}
	return dialer.Dial
}
