package domain

import (
	"testing"
	"time"
)

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.Passes != 1 {
		t.Errorf("expected 1 pass, got %d", p.Passes)
	}
	if p.Backoff != 2*time.Second {
		t.Errorf("expected 2s backoff, got %s", p.Backoff)
	}
}

func TestRetryPolicy_Normalise(t *testing.T) {
	p := RetryPolicy{Passes: 0, Backoff: -time.Second}.Normalise()
	if p.Passes != 1 {
		t.Errorf("expected passes clamped to 1, got %d", p.Passes)
	}
	if p.Backoff != 0 {
		t.Errorf("expected backoff clamped to 0, got %s", p.Backoff)
	}
}
