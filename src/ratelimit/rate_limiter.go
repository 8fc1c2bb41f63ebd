package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

// Verdict is the limiter's answer to an acquire attempt. Throttling is a
// returned state, not an error: a rejected call has no side effects.
type Verdict struct {
	Allowed bool
	Reason  string
}

// Limiter gates outbound model calls with a fixed window: every counter
// resets to zero once Window has elapsed since the window opened. A call
// that would push any counter past its maximum is rejected, not queued.
type Limiter struct {
	mu sync.Mutex

	maxCalls        int
	maxInputTokens  int
	maxOutputTokens int
	window          time.Duration

	windowStart  time.Time
	callCount    int
	inputTokens  int
	outputTokens int

	now func() time.Time
}

func NewLimiter(cfg *config.RateLimitConfig) *Limiter {
	l := &Limiter{
		maxCalls:        cfg.MaxCalls,
		maxInputTokens:  cfg.MaxInputTokens,
		maxOutputTokens: cfg.MaxOutputTokens,
		window:          cfg.Window,
		now:             time.Now,
	}
	l.windowStart = l.now()
	return l
}

// roll resets all counters when the current window has elapsed.
// Caller must hold the mutex.
func (l *Limiter) roll() {
	if l.now().Sub(l.windowStart) >= l.window {
		l.windowStart = l.now()
		l.callCount = 0
		l.inputTokens = 0
		l.outputTokens = 0
	}
}

// Acquire requests admission for one call with the given token estimates.
// On success the window counters are incremented before the call proceeds;
// the caller must pair every successful Acquire with exactly one Release.
func (l *Limiter) Acquire(estimatedInput, estimatedOutput int) Verdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()

	if l.callCount+1 > l.maxCalls {
		return Verdict{Reason: fmt.Sprintf("request limit reached (%d per %s)", l.maxCalls, l.window)}
	}
	if l.inputTokens+estimatedInput > l.maxInputTokens {
		return Verdict{Reason: fmt.Sprintf("input token budget exhausted (%d per %s)", l.maxInputTokens, l.window)}
	}
	if l.outputTokens+estimatedOutput > l.maxOutputTokens {
		return Verdict{Reason: fmt.Sprintf("output token budget exhausted (%d per %s)", l.maxOutputTokens, l.window)}
	}

	l.callCount++
	l.inputTokens += estimatedInput
	l.outputTokens += estimatedOutput

	return Verdict{Allowed: true}
}

// Release reconciles estimated against actual usage after the call finishes.
// It must run on every exit path, including failures, where actual counts of
// zero hand the unused budget back to the window.
func (l *Limiter) Release(estimatedInput, estimatedOutput, actualInput, actualOutput int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()

	l.inputTokens += actualInput - estimatedInput
	if l.inputTokens < 0 {
		l.inputTokens = 0
	}
	l.outputTokens += actualOutput - estimatedOutput
	if l.outputTokens < 0 {
		l.outputTokens = 0
	}
}

// Usage reports the counters of the current window.
func (l *Limiter) Usage() (calls, inputTokens, outputTokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	return l.callCount, l.inputTokens, l.outputTokens
}
