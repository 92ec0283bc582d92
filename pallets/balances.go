package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/types"
)

// TransferAllowDeath is Balances.transfer_allow_death: move Value to
// Dest, permitting the sender's account to be reaped if its remaining
// balance falls below the existential deposit.
type TransferAllowDeath struct {
	Dest  types.MultiAddress
	Value types.Amount
}

func (TransferAllowDeath) PalletID() uint8  { return PalletBalances }
func (TransferAllowDeath) VariantID() uint8 { return 0 }

func (c TransferAllowDeath) Encode(w io.Writer) error {
	if err := c.Dest.Encode(w); err != nil {
		return err
	}
	return scale.EncodeCompactBigInt(w, &c.Value.Int)
}

func (c *TransferAllowDeath) Decode(r io.Reader) error {
	if err := c.Dest.Decode(r); err != nil {
		return err
	}
	v, err := scale.DecodeCompactBigInt(r)
	if err != nil {
		return err
	}
	c.Value = types.NewAmountFromLenna(v)
	return nil
}

// TransferKeepAlive is Balances.transfer_keep_alive: like
// TransferAllowDeath, but the dispatch fails rather than reaping the
// sender's account.
type TransferKeepAlive struct {
	Dest  types.MultiAddress
	Value types.Amount
}

func (TransferKeepAlive) PalletID() uint8  { return PalletBalances }
func (TransferKeepAlive) VariantID() uint8 { return 3 }

func (c TransferKeepAlive) Encode(w io.Writer) error {
	if err := c.Dest.Encode(w); err != nil {
		return err
	}
	return scale.EncodeCompactBigInt(w, &c.Value.Int)
}

func (c *TransferKeepAlive) Decode(r io.Reader) error {
	if err := c.Dest.Decode(r); err != nil {
		return err
	}
	v, err := scale.DecodeCompactBigInt(r)
	if err != nil {
		return err
	}
	c.Value = types.NewAmountFromLenna(v)
	return nil
}

// TransferAll is Balances.transfer_all: send the sender's entire
// (optionally keep-alive-constrained) balance to Dest.
type TransferAll struct {
	Dest      types.MultiAddress
	KeepAlive bool
}

func (TransferAll) PalletID() uint8  { return PalletBalances }
func (TransferAll) VariantID() uint8 { return 4 }

func (c TransferAll) Encode(w io.Writer) error {
	if err := c.Dest.Encode(w); err != nil {
		return err
	}
	return scale.EncodeBool(w, c.KeepAlive)
}

func (c *TransferAll) Decode(r io.Reader) error {
	if err := c.Dest.Decode(r); err != nil {
		return err
	}
	v, err := scale.DecodeBool(r)
	if err != nil {
		return err
	}
	c.KeepAlive = v
	return nil
}

// Transfer is emitted whenever a balance moves between two accounts,
// including as a side effect of fee payment.
type Transfer struct {
	From   types.AccountId
	To     types.AccountId
	Amount types.Amount
}

func (Transfer) PalletID() uint8  { return PalletBalances }
func (Transfer) VariantID() uint8 { return 2 }

func (e *Transfer) Decode(r io.Reader) error {
	if err := e.From.Decode(r); err != nil {
		return err
	}
	if err := e.To.Decode(r); err != nil {
		return err
	}
	v, err := scale.DecodeCompactBigInt(r)
	if err != nil {
		return err
	}
	e.Amount = types.NewAmountFromLenna(v)
	return nil
}

func (e Transfer) Encode(w io.Writer) error {
	if err := e.From.Encode(w); err != nil {
		return err
	}
	if err := e.To.Encode(w); err != nil {
		return err
	}
	return scale.EncodeCompactBigInt(w, &e.Amount.Int)
}
