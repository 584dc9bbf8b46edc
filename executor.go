// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/retryx/attempt"
	"github.com/gogama/retryx/policy"
)

// An Operation performs one attempt of a fallible unit of work, for
// example sending a single HTTP request. It returns nil if the attempt
// succeeded, and an error describing the outcome otherwise.
//
// An operation that fails with a structured outcome, such as an HTTP
// response carrying a rejection status code, should return an error
// that is, or wraps, an *attempt.Failure, so the retry policy can read
// the status code and the response headers. Any other error is treated
// as carrying no status code.
//
// An operation may be called multiple times per execution; each call
// is one attempt. The operation should respect ctx and abandon work
// promptly when ctx is cancelled.
type Operation func(ctx context.Context) error

// DefaultMaxAttempts is the maximum number of attempts an Executor
// makes per execution when no explicit ceiling is configured.
const DefaultMaxAttempts = 3

var emptyHandlers = HandlerGroup{}

// An Executor runs fallible operations with retry support. Its zero
// value is a valid configuration.
//
// The zero value executor uses policy.Default as the retry policy,
// DefaultMaxAttempts as the attempt ceiling, and an empty handler
// group (no event handlers/plug-ins).
//
// Executor keeps no state between executions and is safe for
// concurrent use by multiple goroutines.
//
// An Executor is higher-level than the operation it runs. The
// operation is responsible for all details of performing one attempt
// of the underlying work, for example sending one HTTP request and
// interpreting the response, while Executor builds on top of the
// operation's contract. On top of whatever the operation does,
// Executor adds the following features:
//
// • Executor retries failed attempts using a customizable retry
// policy, waiting out the delay the policy computes before each retry;
//
// • Executor enforces a hard ceiling on the number of attempts per
// execution, independent of the retry policy's appetite for more;
//
// • Executor reacts promptly to context cancellation, abandoning any
// retry wait in progress as soon as the context is done;
//
// • Executor invokes user-provided handler functions at designated
// plug-in points within the attempt/retry loop, allowing new features
// to be mixed in from outside libraries; and
//
// • Executor implements the retryx.Runner interface.
type Executor struct {
	// Policy decides which failed attempts may be retried, and how
	// long to wait after a failed attempt before retrying.
	//
	// If Policy is nil, policy.Default is used.
	Policy policy.Policy
	// MaxAttempts caps the number of attempts made in a single
	// execution, whatever the retry policy decides. The final attempt
	// of an execution is never followed by a wait.
	//
	// If MaxAttempts is zero, DefaultMaxAttempts is used. A negative
	// value causes Execute to panic.
	MaxAttempts int
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during an execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// NewExecutor constructs an Executor with an explicit retry policy and
// attempt ceiling.
//
// NewExecutor panics if p is nil or if maxAttempts is less than one.
// To get default behavior without construction-time validation, use
// the Executor zero value.
func NewExecutor(p policy.Policy, maxAttempts int) *Executor {
	if p == nil {
		panic("retryx: nil policy")
	}
	if maxAttempts < 1 {
		panic("retryx: max attempts must be positive")
	}

	return &Executor{Policy: p, MaxAttempts: maxAttempts}
}

// Execute runs the operation op, retrying failed attempts as directed
// by the executor's retry policy, until an attempt succeeds, the
// policy declines a retry, the attempt ceiling is reached, or ctx is
// cancelled.
//
// The error returned is the error of the final attempt, exactly as op
// returned it. Execute never wraps, replaces, or annotates an
// operation error: a caller that needs to distinguish failure kinds
// can test the returned error directly, for example with errors.As to
// extract an *attempt.Failure. A nil return means an attempt
// succeeded.
//
// If ctx is cancelled or its deadline is exceeded, any retry wait in
// progress is abandoned promptly and Execute returns ctx.Err().
// Cancellation never converts a success: if the final attempt
// returned nil, Execute returns nil even when ctx was cancelled while
// the attempt ran.
//
// The retry policy has no error channel of its own. A panic in the
// policy, as in a handler or in op itself, propagates out of Execute
// to the caller.
//
// Execute panics if op is nil, or if the executor is misconfigured
// with a negative MaxAttempts.
func (x *Executor) Execute(ctx context.Context, op Operation) error {
	if op == nil {
		panic("retryx: nil operation")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pol := x.Policy
	if pol == nil {
		pol = policy.Default
	}

	maxAttempts := x.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	} else if maxAttempts < 0 {
		panic("retryx: max attempts must be positive")
	}

	handlers := x.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	s := attempt.State{
		MaxAttempts: maxAttempts,
	}
	handlers.run(BeforeExecutionStart, &s)
	s.Start = time.Now()
	s.Attempt = 1

RetryLoop:
	for {
		handlers.run(BeforeAttempt, &s)
		err := op(ctx)
		s.Err = err
		s.Failure = nil
		if err != nil {
			var f *attempt.Failure
			if errors.As(err, &f) {
				s.Failure = f
			}
		}
		handlers.run(AfterAttempt, &s)
		if err == nil {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.Err = ctxErr
			s.Failure = nil
			break
		}
		if !pol.Retryable(&s) {
			break
		}
		if s.Attempt == maxAttempts {
			break
		}
		s.Wait = pol.Wait(&s)
		handlers.run(BeforeWait, &s)
		timer := time.NewTimer(s.Wait)
		select {
		case <-timer.C:
			break
		case <-ctx.Done():
			timer.Stop()
			s.Err = ctx.Err()
			s.Failure = nil
			break RetryLoop
		}
		s.Err = nil
		s.Failure = nil
		s.Attempt++
	}

	s.End = time.Now()
	handlers.run(AfterExecutionEnd, &s)
	return s.Err
}

// Wrap returns an operation that runs op through the executor.
// Calling the returned operation is equivalent to passing op to
// Execute, so one call to the wrapped operation makes up to
// MaxAttempts attempts of op.
//
// Wrap is useful when an API consumes a plain operation but the
// caller wants retry behavior behind it. Wrap panics if op is nil.
func (x *Executor) Wrap(op Operation) Operation {
	if op == nil {
		panic("retryx: nil operation")
	}

	return func(ctx context.Context) error {
		return x.Execute(ctx, op)
	}
}
