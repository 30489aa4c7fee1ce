package retry

import (
	"errors"
	"testing"
	"time"
)

func TestPolicy_Do_SucceedsFirstAttempt(t *testing.T) {
	policy := NewPolicy(3, time.Second).WithSleep(func(time.Duration) {
		t.Fatal("no backoff expected when the first attempt succeeds")
	})

	calls := 0
	err := policy.Do(func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestPolicy_Do_RetriesUntilSuccess(t *testing.T) {
	var slept []time.Duration
	policy := NewPolicy(3, 2*time.Second).WithSleep(func(d time.Duration) {
		slept = append(slept, d)
	})

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 backoffs, got %d", len(slept))
	}
	for _, d := range slept {
		if d != 2*time.Second {
			t.Errorf("expected fixed 2s backoff, got %v", d)
		}
	}
}

func TestPolicy_Do_ExhaustsBudget(t *testing.T) {
	policy := NewPolicy(3, 0).WithSleep(func(time.Duration) {})

	lastErr := errors.New("still broken")
	calls := 0
	err := policy.Do(func() error {
		calls++
		return lastErr
	})
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("expected the last error back, got %v", err)
	}
}

func TestNewPolicy_MinimumOneAttempt(t *testing.T) {
	policy := NewPolicy(0, 0)

	calls := 0
	_ = policy.Do(func() error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls)
	}
}
