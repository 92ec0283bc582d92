package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/types"
)

// Batch is Utility.batch: dispatch every call in order, stopping at the
// first failure; BatchInterrupted is emitted for the call that failed.
type Batch struct {
	Calls []types.Call
}

func (Batch) PalletID() uint8  { return PalletUtility }
func (Batch) VariantID() uint8 { return 0 }

func (c Batch) Encode(w io.Writer) error {
	return scale.EncodeVec(w, c.Calls, func(w io.Writer, call types.Call) error {
		return call.Encode(w)
	})
}

func (c *Batch) Decode(r io.Reader) error {
	calls, err := scale.DecodeVec(r, func(r io.Reader) (types.Call, error) {
		return types.DecodeCall(r)
	})
	if err != nil {
		return err
	}
	c.Calls = calls
	return nil
}

// BatchAll is Utility.batch_all: dispatch every call atomically, rolling
// back the whole batch if any one call fails.
type BatchAll struct {
	Calls []types.Call
}

func (BatchAll) PalletID() uint8  { return PalletUtility }
func (BatchAll) VariantID() uint8 { return 2 }

func (c BatchAll) Encode(w io.Writer) error {
	return scale.EncodeVec(w, c.Calls, func(w io.Writer, call types.Call) error {
		return call.Encode(w)
	})
}

func (c *BatchAll) Decode(r io.Reader) error {
	calls, err := scale.DecodeVec(r, func(r io.Reader) (types.Call, error) {
		return types.DecodeCall(r)
	})
	if err != nil {
		return err
	}
	c.Calls = calls
	return nil
}

// BatchCompleted is emitted once every call in a Batch/BatchAll has
// dispatched without the batch itself being interrupted.
type BatchCompleted struct{}

func (BatchCompleted) PalletID() uint8  { return PalletUtility }
func (BatchCompleted) VariantID() uint8 { return 2 }
func (*BatchCompleted) Decode(r io.Reader) error {
	_, err := io.ReadAll(r)
	return err
}

// BatchInterrupted is emitted when Batch stops early: Index is the
// position of the failing call, DispatchError its failure reason.
type BatchInterrupted struct {
	Index         uint32
	DispatchError DispatchError
}

func (BatchInterrupted) PalletID() uint8  { return PalletUtility }
func (BatchInterrupted) VariantID() uint8 { return 1 }

func (e *BatchInterrupted) Decode(r io.Reader) error {
	index, err := scale.DecodeUint32(r)
	if err != nil {
		return err
	}
	e.Index = index
	return e.DispatchError.Decode(r)
}
