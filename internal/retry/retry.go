// Package retry provides the bounded-retry policy shared by all
// UI-automation stages. Retry semantics live here so every label lookup
// behaves the same and can be tested independently of the automation code.
package retry

import "time"

// Policy is a bounded retry budget with a fixed backoff between attempts.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration

	// sleep is swappable in tests
	sleep func(time.Duration)
}

// NewPolicy creates a policy with the given attempt budget and fixed backoff.
// MaxAttempts below 1 is treated as 1.
func NewPolicy(maxAttempts int, backoff time.Duration) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		sleep:       time.Sleep,
	}
}

// WithSleep returns a copy of the policy using the given sleep function.
func (p Policy) WithSleep(sleep func(time.Duration)) Policy {
	p.sleep = sleep
	return p
}

// Do runs fn up to MaxAttempts times, sleeping the fixed backoff between
// attempts. The last error is returned once the budget is exhausted.
func (p Policy) Do(fn func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			sleep(p.Backoff)
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
