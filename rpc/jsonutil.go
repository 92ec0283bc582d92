package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// hexOrDecimal unmarshals a JSON-RPC field that may arrive as either a
// "0x"-prefixed hex string (as chain_getHeader's block number does) or
// a plain JSON number, normalizing both to a single representation.
type hexOrDecimal string

func (h *hexOrDecimal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = hexOrDecimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rpc: value is neither a hex string nor a number: %s", data)
	}
	*h = hexOrDecimal(n.String())
	return nil
}

// Uint32 parses the underlying value as a uint32, accepting both the
// "0x"-prefixed and plain-decimal forms.
func (h hexOrDecimal) Uint32() (uint32, error) {
	s := strings.TrimPrefix(string(h), "0x")
	base := 10
	if strings.HasPrefix(string(h), "0x") {
		base = 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("rpc: parsing %q as a block number: %w", h, err)
	}
	return uint32(n), nil
}
