package transaction

import (
	"context"
	"testing"

	"github.com/availproject/avail-go-sdk/avail"
	"github.com/availproject/avail-go-sdk/pallets"
	"github.com/availproject/avail-go-sdk/rpc"
	"github.com/availproject/avail-go-sdk/transport/mock"
	"github.com/availproject/avail-go-sdk/types"
)

const testFinalizedHashHex = "0x" +
	"a1a1a1a1a1a1a1a1" +
	"a1a1a1a1a1a1a1a1" +
	"a1a1a1a1a1a1a1a1" +
	"a1a1a1a1a1a1a1a1"

func newTestClient() (*rpc.Client, *mock.Transport) {
	tr := mock.New()
	return rpc.NewClient(tr, false, false), tr
}

func submitDataCall() types.Call {
	return types.Call{PalletID: pallets.PalletDataAvailability, VariantID: pallets.SubmitData{}.VariantID(), Args: []byte{0x04, 0xaa, 0xbb}}
}

func balanceTransferCall() types.Call {
	return types.Call{PalletID: pallets.PalletBalances, VariantID: 0, Args: []byte{0x01, 0x02}}
}

func TestRefineOptionsRejectsNonZeroAppIDOnNonDataCall(t *testing.T) {
	_, tr := newTestClient()
	c := rpc.NewClient(tr, false, false)

	appID := uint64(7)
	var account types.AccountId
	_, err := RefineOptions(context.Background(), c, account, balanceTransferCall(), Options{AppID: &appID})
	if err == nil {
		t.Fatal("expected InvalidTransactionError, got nil")
	}
	if _, ok := err.(*avail.InvalidTransactionError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
	if tr.CallCount("system_accountNextIndex") != 0 {
		t.Fatal("app_id check must run before any RPC call")
	}
}

func TestRefineOptionsAllowsNonZeroAppIDOnSubmitData(t *testing.T) {
	_, tr := newTestClient()
	c := rpc.NewClient(tr, false, false)
	tr.OnJSON("system_accountNextIndex", 3)
	tr.OnJSON("chain_getFinalizedHead", testFinalizedHashHex)
	tr.OnJSON("chain_getHeader", map[string]interface{}{
		"number":     "0x64",
		"parentHash": testFinalizedHashHex,
	})

	appID := uint64(7)
	var account types.AccountId
	refined, err := RefineOptions(context.Background(), c, account, submitDataCall(), Options{AppID: &appID})
	if err != nil {
		t.Fatalf("RefineOptions: %v", err)
	}
	if refined.AppID != 7 {
		t.Fatalf("got app id %d", refined.AppID)
	}
	if refined.Nonce != 3 {
		t.Fatalf("got nonce %d", refined.Nonce)
	}
	if refined.Mortality.Period != types.DefaultMortalityPeriod {
		t.Fatalf("got period %d", refined.Mortality.Period)
	}
	if refined.Mortality.BlockHeight != 100 {
		t.Fatalf("got mortality height %d", refined.Mortality.BlockHeight)
	}
}

func TestRefineOptionsHonorsExplicitNonceAndMortality(t *testing.T) {
	_, tr := newTestClient()
	c := rpc.NewClient(tr, false, false)
	tr.OnJSON("chain_getBlockHash", testFinalizedHashHex)

	nonce := uint64(42)
	height := uint32(55)
	var account types.AccountId
	refined, err := RefineOptions(context.Background(), c, account, balanceTransferCall(), Options{
		Nonce:     &nonce,
		Mortality: &MortalityOptions{Period: 16, BlockHeight: &height},
	})
	if err != nil {
		t.Fatalf("RefineOptions: %v", err)
	}
	if refined.Nonce != 42 {
		t.Fatalf("got nonce %d", refined.Nonce)
	}
	if refined.Mortality.Period != 16 || refined.Mortality.BlockHeight != 55 {
		t.Fatalf("got mortality %+v", refined.Mortality)
	}
	if tr.CallCount("system_accountNextIndex") != 0 {
		t.Fatal("explicit nonce must skip the RPC fetch")
	}
}
