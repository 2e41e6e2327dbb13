package domain

import "time"

// RetryPolicy bounds the (credential, model) failover loop of the chat
// completer. One pass attempts every credential with every model once.
// The same policy applies to generation, detection and translation calls.
type RetryPolicy struct {
	// Passes is the number of full passes over all combinations before
	// giving up with ErrServiceUnavailable. Must be at least 1.
	Passes int

	// Backoff is the fixed wait after a failed attempt
	Backoff time.Duration
}

// DefaultRetryPolicy returns the deployment default: a single full pass
// with a 2 second backoff between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Passes:  1,
		Backoff: 2 * time.Second,
	}
}

// Normalise clamps nonsensical values to the defaults.
func (p RetryPolicy) Normalise() RetryPolicy {
	if p.Passes < 1 {
		p.Passes = 1
	}
	if p.Backoff < 0 {
		p.Backoff = 0
	}
	return p
}
