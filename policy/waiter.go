// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package policy

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/gogama/retryx/attempt"
)

// A Waiter computes how long to wait before retrying a failed attempt.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines. A Waiter only computes the delay: the actual
// sleeping is the executor's responsibility, so a Waiter must never
// block, and must never return a negative duration.
//
// The executor will not consult the Waiter on a retry policy if the
// policy Classifier returned false.
//
// This package provides three Waiter constructors, NewFixedWaiter,
// NewExpWaiter, and NewRetryAfterWaiter. In addition it provides a
// concrete instance suitable for typical rate-limit use cases,
// DefaultWaiter.
type Waiter interface {
	Wait(s *attempt.State) time.Duration
}

// DefaultWaiter is the default retry wait policy. It waits out a
// Retry-After header carried by the current failure, and falls back to
// a fixed one second wait for failures that provide no usable header
// value.
var DefaultWaiter = NewRetryAfterWaiter(NewFixedWaiter(time.Second))

const retryAfterHeader = "Retry-After"

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant retry backoff. The duration
// d may not be negative.
func NewFixedWaiter(d time.Duration) Waiter {
	if d < 0 {
		panic("retryx/policy: fixed wait must not be negative")
	}
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *attempt.State) time.Duration {
	return time.Duration(w)
}

// NewRetryAfterWaiter constructs a Waiter that honors a server-provided
// Retry-After header (RFC 6585 §4), computing the wait with the given
// fallback Waiter for failures that do not provide one.
//
// The returned waiter looks up the header named "Retry-After",
// case-insensitively, on the current failure, and parses its value as
// a non-negative integer count of seconds. If the parse succeeds, the
// parsed value is the wait; a value too large to represent as a
// time.Duration is clamped to the largest representable whole-second
// wait. It takes absolute priority over the fallback, even when it is
// zero or larger than anything the fallback would return: a server
// that names an exact cooldown knows its own limits better than any
// client-side formula. If the header is absent, or its value is
// non-numeric, negative, or otherwise malformed, the wait is whatever
// the fallback computes for the same state.
//
// Only the delay-seconds form of Retry-After is recognized; the
// HTTP-date form falls through to the fallback.
//
// The fallback may not be nil. It must itself be a pure, non-blocking
// Waiter; a fixed waiter or an exponential waiter are typical choices.
func NewRetryAfterWaiter(fallback Waiter) Waiter {
	if fallback == nil {
		panic("retryx/policy: nil fallback waiter")
	}
	return retryAfterWaiter{fallback: fallback}
}

type retryAfterWaiter struct {
	fallback Waiter
}

// maxRetryAfterSeconds is the largest second count that converts to a
// time.Duration without overflowing into a negative wait.
const maxRetryAfterSeconds = math.MaxInt64 / int64(time.Second)

func (w retryAfterWaiter) Wait(s *attempt.State) time.Duration {
	if v := s.Header(retryAfterHeader); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs >= 0 {
			if secs > maxRetryAfterSeconds {
				secs = maxRetryAfterSeconds
			}
			return time.Duration(secs) * time.Second
		}
	}

	return w.fallback.Wait(s)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling:
//
//	ceil := min(base * 2**(attempt-1), max)
//
// so the ceiling is base when the first retry is scheduled and doubles
// for each retry after that. Base and max must be positive values, and
// max must be at least equal to base.
//
// Parameter jitter is used to generate a random number between 0 and
// ceil. To make a waiter that does not jitter and simply returns ceil
// on each attempt, pass nil for jitter. Otherwise you may specify
// either a random number generator seed value (as a time.Time, int, or
// int64) or a random number generator (as a rand.Source). If a seed
// value is specified, it is used to seed a random number generator
// for calculating jitter. If a rand.Source is specified, it is used to
// calculate jitter.
func NewExpWaiter(base, max time.Duration, jitter any) Waiter {
	if base < 1 {
		panic("retryx/policy: base must be positive")
	}
	if max < base {
		panic("retryx/policy: max must be at least base")
	}
	r := jitterToRand(jitter)
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: r,
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(s *attempt.State) time.Duration {
	n := s.Attempt - 1
	if n < 0 {
		n = 0
	}

	exp := int64(1) << n
	if exp < 1 {
		exp = 1<<63 - 1
	}

	ceil := int64(w.base) * exp
	if ceil < int64(w.base) || int64(w.max) < ceil {
		ceil = int64(w.max)
	}

	duration := ceil
	if ceil > 0 {
		w.lock.Lock()
		defer w.lock.Unlock()
		if w.rand != nil {
			duration = w.rand.Int63n(ceil)
		}
	}

	return time.Duration(duration)
}

func jitterToRand(jitter any) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("retryx/policy: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("retryx/policy: invalid jitter type")
	}
	return rand.New(s)
}
