// Package retry runs an operation with bounded attempts and exponential backoff.
// It has no knowledge of what the operation does.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultMaxDelay   = 5 * time.Minute
	DefaultJitter     = 0.2
)

type Policy struct {
	// MaxRetries bounds the total number of attempts of one execution.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	// Jitter is the symmetric fraction of the delay added or removed at random.
	Jitter float64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Jitter:     DefaultJitter,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MaxRetries <= 0 {
		p.MaxRetries = d.MaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.Jitter <= 0 || p.Jitter >= 1 {
		p.Jitter = d.Jitter
	}
	return p
}

// Backoff returns the unjittered delay before retry n (0-based):
// min(BaseDelay * 2^n, MaxDelay).
func (p Policy) Backoff(n int) time.Duration {
	p = p.normalized()
	if n < 0 {
		n = 0
	}
	d := float64(p.BaseDelay) * math.Pow(2, float64(n))
	if d >= float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// Jittered spreads d uniformly over [d-Jitter*d, d+Jitter*d]. r must be in [0, 1).
func (p Policy) Jittered(d time.Duration, r float64) time.Duration {
	p = p.normalized()
	spread := float64(d) * p.Jitter
	out := time.Duration(float64(d) - spread + 2*spread*r)
	if out < 0 {
		return 0
	}
	return out
}

// Operation is a single attempt. attempt starts at 1.
type Operation func(ctx context.Context, attempt int) error

// Attempt describes a finished attempt.
type Attempt struct {
	Number    int
	Delay     time.Duration
	Err       error
	Retryable bool
}

type Result struct {
	Attempts  int
	Err       error
	Retryable bool
}

func (r Result) Success() bool { return r.Err == nil }

type Engine struct {
	policy   Policy
	classify func(error) bool
	sleep    func(context.Context, time.Duration) error
	random   func() float64
}

type Option func(*Engine)

// WithSleep replaces the wait between attempts.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(e *Engine) { e.sleep = fn }
}

// WithRandom replaces the jitter source. fn must return values in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(e *Engine) { e.random = fn }
}

// WithClassifier replaces IsRetryable.
func WithClassifier(fn func(error) bool) Option {
	return func(e *Engine) { e.classify = fn }
}

func New(p Policy, opts ...Option) *Engine {
	e := &Engine{
		policy:   p.normalized(),
		classify: IsRetryable,
		sleep:    sleepContext,
		random:   rand.Float64,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Execute runs op until it succeeds, fails with a non-retryable error or MaxRetries
// attempts were made. onAttempt, when not nil, is called after every attempt.
func (e *Engine) Execute(ctx context.Context, op Operation, onAttempt func(Attempt)) Result {
	var (
		delay   time.Duration
		lastErr error
	)

	for attempt := 1; attempt <= e.policy.MaxRetries; attempt++ {
		if attempt > 1 {
			delay = e.policy.Jittered(e.policy.Backoff(attempt-2), e.random())
			if err := e.sleep(ctx, delay); err != nil {
				return Result{Attempts: attempt - 1, Err: lastErr, Retryable: true}
			}
		}

		err := op(ctx, attempt)
		retryable := err != nil && e.classify(err)
		if onAttempt != nil {
			onAttempt(Attempt{Number: attempt, Delay: delay, Err: err, Retryable: retryable})
		}

		if err == nil {
			return Result{Attempts: attempt}
		}
		if !retryable {
			return Result{Attempts: attempt, Err: err}
		}
		lastErr = err
	}

	return Result{
		Attempts:  e.policy.MaxRetries,
		Err:       &ExhaustedError{Attempts: e.policy.MaxRetries, Err: lastErr},
		Retryable: true,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
