package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/types"
)

// SubmitData is DataAvailability.submit_data: post arbitrary bytes into
// the block's data availability layer under the extrinsic's app id. The
// only call allowed alongside a non-zero app id (transaction.Options).
type SubmitData struct {
	Data []byte
}

func (SubmitData) PalletID() uint8  { return PalletDataAvailability }
func (SubmitData) VariantID() uint8 { return 1 }

func (c SubmitData) Encode(w io.Writer) error {
	return scale.EncodeBytes(w, c.Data)
}

func (c *SubmitData) Decode(r io.Reader) error {
	b, err := scale.DecodeBytes(r)
	if err != nil {
		return err
	}
	c.Data = b
	return nil
}

// DataSubmitted is emitted once per successful SubmitData dispatch,
// carrying the submitter and a commitment hash over the posted bytes.
type DataSubmitted struct {
	Who      types.AccountId
	DataHash types.BlockHash
}

func (DataSubmitted) PalletID() uint8  { return PalletDataAvailability }
func (DataSubmitted) VariantID() uint8 { return 0 }

func (e *DataSubmitted) Decode(r io.Reader) error {
	if err := e.Who.Decode(r); err != nil {
		return err
	}
	return e.DataHash.Decode(r)
}

func (e DataSubmitted) Encode(w io.Writer) error {
	if err := e.Who.Encode(w); err != nil {
		return err
	}
	return e.DataHash.Encode(w)
}
