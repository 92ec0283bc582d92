package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/types"
)

// Proxy is Proxy.proxy: dispatch Call as Real, provided the signer has
// been registered as one of Real's proxies (optionally restricted to a
// specific ForceProxyType).
type Proxy struct {
	Real           types.MultiAddress
	ForceProxyType *uint8
	Call           types.Call
}

func (Proxy) PalletID() uint8  { return PalletProxy }
func (Proxy) VariantID() uint8 { return 0 }

func (c Proxy) Encode(w io.Writer) error {
	if err := c.Real.Encode(w); err != nil {
		return err
	}
	if err := scale.EncodeOption(w, c.ForceProxyType, scale.EncodeUint8); err != nil {
		return err
	}
	return c.Call.Encode(w)
}

func (c *Proxy) Decode(r io.Reader) error {
	if err := c.Real.Decode(r); err != nil {
		return err
	}
	proxyType, err := scale.DecodeOption(r, scale.DecodeUint8)
	if err != nil {
		return err
	}
	c.ForceProxyType = proxyType
	call, err := types.DecodeCall(r)
	if err != nil {
		return err
	}
	c.Call = call
	return nil
}

// AddProxy is Proxy.add_proxy: register Delegate as a proxy for the
// signer, restricted to ProxyType and subject to a Delay in blocks
// before it may act.
type AddProxy struct {
	Delegate  types.MultiAddress
	ProxyType uint8
	Delay     uint32
}

func (AddProxy) PalletID() uint8  { return PalletProxy }
func (AddProxy) VariantID() uint8 { return 1 }

func (c AddProxy) Encode(w io.Writer) error {
	if err := c.Delegate.Encode(w); err != nil {
		return err
	}
	if err := scale.EncodeUint8(w, c.ProxyType); err != nil {
		return err
	}
	return scale.EncodeUint32(w, c.Delay)
}

func (c *AddProxy) Decode(r io.Reader) error {
	if err := c.Delegate.Decode(r); err != nil {
		return err
	}
	pt, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	c.ProxyType = pt
	delay, err := scale.DecodeUint32(r)
	if err != nil {
		return err
	}
	c.Delay = delay
	return nil
}

// ProxyExecuted is emitted after a Proxy call dispatches, carrying the
// inner call's dispatch result.
type ProxyExecuted struct {
	DispatchError *DispatchError
}

func (ProxyExecuted) PalletID() uint8  { return PalletProxy }
func (ProxyExecuted) VariantID() uint8 { return 0 }

func (e *ProxyExecuted) Decode(r io.Reader) error {
	derr, err := scale.DecodeOption(r, func(r io.Reader) (DispatchError, error) {
		var d DispatchError
		err := d.Decode(r)
		return d, err
	})
	if err != nil {
		return err
	}
	e.DispatchError = derr
	return nil
}
