package pallets

import (
	"bytes"
	"testing"

	"github.com/availproject/avail-go-sdk/types"
)

func TestToCallRoundTrip(t *testing.T) {
	remark := Remark{Bytes: []byte("hello")}
	call, err := ToCall(remark)
	if err != nil {
		t.Fatal(err)
	}
	if call.PalletID != PalletSystem || call.VariantID != 0 {
		t.Fatalf("unexpected dispatch index: %+v", call)
	}

	var got Remark
	if err := got.Decode(bytes.NewReader(call.Args)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes, remark.Bytes) {
		t.Fatalf("got %q want %q", got.Bytes, remark.Bytes)
	}
}

func TestSubmitDataRoundTrip(t *testing.T) {
	call := SubmitData{Data: []byte("avail blob")}
	var buf bytes.Buffer
	if err := call.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	var got SubmitData
	if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Data, call.Data) {
		t.Fatalf("got %q want %q", got.Data, call.Data)
	}
	if call.PalletID() != PalletDataAvailability || call.VariantID() != 1 {
		t.Fatalf("unexpected dispatch index: pallet=%d variant=%d", call.PalletID(), call.VariantID())
	}
}

func TestTransferAllowDeathRoundTrip(t *testing.T) {
	var id types.AccountId
	id[0] = 0xAB

	call := TransferAllowDeath{
		Dest:  types.NewMultiAddressId(id),
		Value: types.NewAmountFromAvail(3),
	}
	var buf bytes.Buffer
	if err := call.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	var got TransferAllowDeath
	if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if got.Dest.Id != id {
		t.Fatalf("dest mismatch")
	}
	if got.Value.Cmp(&call.Value.Int) != 0 {
		t.Fatalf("value mismatch: got %s want %s", got.Value.String(), call.Value.String())
	}
}

func TestBatchRoundTrip(t *testing.T) {
	remark, err := ToCall(Remark{Bytes: []byte("a")})
	if err != nil {
		t.Fatal(err)
	}
	submit, err := ToCall(SubmitData{Data: []byte("b")})
	if err != nil {
		t.Fatal(err)
	}

	batch := Batch{Calls: []types.Call{remark, submit}}
	var buf bytes.Buffer
	if err := batch.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	var got Batch
	if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if len(got.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(got.Calls))
	}
	if got.Calls[0].PalletID != PalletSystem || got.Calls[1].PalletID != PalletDataAvailability {
		t.Fatalf("unexpected call pallet ids: %+v", got.Calls)
	}
}

func TestEventRegistryDecodesKnownEvents(t *testing.T) {
	reg := NewEventRegistry()

	var who types.AccountId
	who[0] = 1
	var dataHash types.BlockHash
	dataHash[0] = 2
	want := DataSubmitted{Who: who, DataHash: dataHash}

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	decoded, err := reg.Decode(PalletDataAvailability, 0, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got, ok := decoded.(*DataSubmitted)
	if !ok {
		t.Fatalf("expected *DataSubmitted, got %T", decoded)
	}
	if got.Who != who || got.DataHash != dataHash {
		t.Fatalf("decoded event mismatch: %+v", got)
	}
}

func TestEventRegistryUnknownVariant(t *testing.T) {
	reg := NewEventRegistry()
	if _, err := reg.Decode(0xFF, 0xFF, nil); err == nil {
		t.Fatal("expected an error for an unregistered (palletID, variantID) pair")
	}
}

func TestAsMultiThreshold1RoundTrip(t *testing.T) {
	var a, b types.AccountId
	a[0], b[0] = 1, 2
	innerCall, err := ToCall(Remark{Bytes: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}

	call := AsMultiThreshold1{OtherSignatories: []types.AccountId{a, b}, Call: innerCall}
	var buf bytes.Buffer
	if err := call.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	var got AsMultiThreshold1
	if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if len(got.OtherSignatories) != 2 || got.OtherSignatories[0] != a || got.OtherSignatories[1] != b {
		t.Fatalf("signatories mismatch: %+v", got.OtherSignatories)
	}
	if got.Call.PalletID != PalletSystem {
		t.Fatalf("inner call mismatch: %+v", got.Call)
	}
}

func TestProxyRoundTrip(t *testing.T) {
	var real types.AccountId
	real[0] = 9
	proxyType := uint8(1)
	innerCall, err := ToCall(SubmitData{Data: []byte("z")})
	if err != nil {
		t.Fatal(err)
	}

	call := Proxy{Real: types.NewMultiAddressId(real), ForceProxyType: &proxyType, Call: innerCall}
	var buf bytes.Buffer
	if err := call.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	var got Proxy
	if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if got.Real.Id != real {
		t.Fatalf("real mismatch")
	}
	if got.ForceProxyType == nil || *got.ForceProxyType != proxyType {
		t.Fatalf("force proxy type mismatch: %+v", got.ForceProxyType)
	}
}
