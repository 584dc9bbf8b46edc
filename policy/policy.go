// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package policy

import (
	"time"

	"github.com/gogama/retryx/attempt"
)

// A Policy controls if and how an executor retries a failed operation.
// In particular, after every failed attempt, a Policy decides whether
// a retry should be done and, if so, how long the wait period should
// be before retrying the attempt.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// A Policy is composed of the Classifier and Waiter interfaces. While
// you can implement Policy yourself, it may be more efficient to use
// one of the built-in retry policies, Default or Never, or to
// construct your policy using the New constructor using existing
// Classifier and Waiter implementations.
type Policy interface {
	Classifier
	Waiter
}

// Default is a retry policy for rate-limited operations. It is a
// composition of DefaultClassifier for retry decisions, so only
// attempts rejected with HTTP status 429 (Too Many Requests) are
// retried, and DefaultWaiter for wait time calculations, so a
// Retry-After header sent by the server sets the wait and failures
// without one wait a fixed one second.
var Default Policy = policy{DefaultClassifier, DefaultWaiter}

// Never is a policy that never retries. It is useful if you want to
// use the other features of retryx.Executor but do not want retries.
var Never Policy = policy{StatusCode(), DefaultWaiter}

type policy struct {
	classifier Classifier
	waiter     Waiter
}

// New composes a Classifier and a Waiter into a retry Policy. Neither
// the Classifier nor the Waiter may be nil.
func New(c Classifier, w Waiter) Policy {
	if c == nil {
		panic("retryx/policy: nil classifier")
	}
	if w == nil {
		panic("retryx/policy: nil waiter")
	}
	return policy{classifier: c, waiter: w}
}

func (p policy) Retryable(s *attempt.State) bool {
	return p.classifier.Retryable(s)
}

func (p policy) Wait(s *attempt.State) time.Duration {
	return p.waiter.Wait(s)
}
