package rpc

import (
	"context"
	"errors"
	"testing"
)

func TestEffectiveOverrideWins(t *testing.T) {
	yes := true
	no := false
	if !effective(&yes, false) {
		t.Fatal("override true should win over default false")
	}
	if effective(&no, true) {
		t.Fatal("override false should win over default true")
	}
	if !effective(nil, true) {
		t.Fatal("nil override should fall back to default")
	}
}

func TestWithRetryReturnsImmediatelyOnSuccess(t *testing.T) {
	calls := 0
	result, err := withRetry(context.Background(), true, func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || result != 7 {
		t.Fatalf("got %d, %v", result, err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryDoesNotRetryWhenDisabled(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")
	_, err := withRetry(context.Background(), false, func(ctx context.Context) (int, error) {
		calls++
		return 0, wantErr
	})
	if err != wantErr {
		t.Fatalf("got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryRetriesOnceThenSucceeds(t *testing.T) {
	calls := 0
	result, err := withRetry(context.Background(), true, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 9, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 9 {
		t.Fatalf("got %d", result)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetryOnNoneStopsImmediatelyWhenDisabled(t *testing.T) {
	calls := 0
	result, err := withRetryOnNone(context.Background(), false, false, func(ctx context.Context) (*int, error) {
		calls++
		return nil, nil
	})
	if err != nil || result != nil {
		t.Fatalf("got %v, %v", result, err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryOnNoneRetriesOnceThenFindsResult(t *testing.T) {
	calls := 0
	want := 3
	result, err := withRetryOnNone(context.Background(), false, true, func(ctx context.Context) (*int, error) {
		calls++
		if calls == 1 {
			return nil, nil
		}
		return &want, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || *result != want {
		t.Fatalf("got %v", result)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetryOnNonePropagatesHardError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := withRetryOnNone(context.Background(), false, true, func(ctx context.Context) (*int, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("got %v", err)
	}
}
