// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package policy provides flexible retry policies which decide whether
// a failed attempt should be retried, and how long to wait before
// retrying.
//
// The interface Policy defines a retry policy. A Policy instance can be
// constructed using New by providing a decision-maker, Classifier, and
// a wait time calculator, Waiter. Both Classifier and Waiter have
// constructors for common use cases, so that a useful policy can be
// quickly assembled:
//
//	classifier := policy.StatusCode(429, 503).
//	                  Or(policy.TransientErr).
//	                  And(policy.Before(30 * time.Second))
//	waiter := policy.NewRetryAfterWaiter(
//	              policy.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()))
//	p := policy.New(classifier, waiter)
//
// The built-in policy Default retries exactly the rate-limited attempts
// (status 429 Too Many Requests), waiting out the server's Retry-After
// header when one is present and one second otherwise.
//
// If the built-in functionality is insufficient, fully custom retry
// policies can be created via custom implementations of Classifier,
// Waiter, or Policy.
package policy
