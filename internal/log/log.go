// Package log holds the module-wide slog backend that rpc,
// subscription, and transaction pull their per-subsystem loggers from,
// the way every decred-ecosystem package tags its output (e.g. "RPCC",
// "AMGR") from one backend wired up by the consuming application.
// Silent (writes to io.Discard) until UseBackend or InitLogRotator
// points it at real output.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

var (
	mu      sync.RWMutex
	backend = slog.NewBackend(io.Discard)
)

// Tagged returns a logger for subsystem (e.g. "RPCC", "SUBS", "TXNP"),
// bound to the backend currently in effect. Callers fetch it at each
// log call site rather than caching it at package-init time, so a
// later UseBackend or InitLogRotator call takes effect immediately
// instead of binding to a stale discard-everything backend.
func Tagged(subsystem string) slog.Logger {
	mu.RLock()
	b := backend
	mu.RUnlock()
	return b.Logger(subsystem)
}

// UseBackend replaces the shared backend every subsystem's Tagged
// logger draws from.
func UseBackend(b *slog.Backend) {
	mu.Lock()
	backend = b
	mu.Unlock()
}

// InitLogRotator initializes a rotating file logger at logFile and
// wires it as the shared backend, mirroring the teacher's logger setup
// for long-lived node processes. Intended for callers that run a
// subscription loop as a standing process and want durable logs across
// restarts rather than an in-memory-only logger.
func InitLogRotator(logFile string, maxRolls int) (io.Closer, error) {
	r, err := rotator.New(logFile, 10*1024, false, maxRolls)
	if err != nil {
		return nil, err
	}
	UseBackend(slog.NewBackend(io.MultiWriter(os.Stdout, r)))
	return r, nil
}
