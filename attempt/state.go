// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import (
	"context"
	"strings"
	"time"
)

// A State represents the progress of one execution of a retryable
// operation.
//
// When an executor starts executing an operation, it creates a State
// for the execution. The State is updated as attempts conclude and
// retries are scheduled, and it is what the executor hands to retry
// classifiers, waiters, and event handlers for examination.
//
// Classifiers, waiters, and event handlers may set values on a State
// using its SetValue method and read them back using the Value method.
// However, they should treat the structure's exported field values as
// immutable and leave them unmodified, as the state is vital to the
// correct functioning of the attempt loop.
type State struct {
	// Attempt is the number of the current attempt within the
	// execution. Attempts are numbered starting at 1, so Attempt is 1
	// during the initial attempt, 2 during the first retry, and so on.
	// It is zero before the execution starts.
	//
	// When the execution has ended, Attempt contains the number of the
	// last attempt made, so an execution that ends after an initial
	// attempt plus two retries has an attempt number of 3.
	Attempt int

	// MaxAttempts is the ceiling on the total number of attempts the
	// executor will make during the execution. It is always at least 1
	// once the execution has started.
	MaxAttempts int

	// Start is the start time of the execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends, when it is set to the current time.
	End time.Time

	// Err is the error returned by the most recent attempt, exactly as
	// the operation returned it. It is nil if the most recent attempt
	// succeeded, or if a current attempt is underway, or before the
	// execution starts.
	//
	// Once the execution has ended, Err no longer changes and is the
	// same value the executor returned to its caller. If the execution
	// was cancelled while waiting to retry, Err is the context's error
	// rather than the error from the last attempt.
	Err error

	// Failure is the structured view of Err. It is non-nil exactly when
	// Err is, or wraps, a *Failure; otherwise it is nil.
	Failure *Failure

	// Wait is the most recent retry delay computed by the policy's
	// waiter. It is zero until the first retry is scheduled, and is not
	// reset by subsequent attempts.
	Wait time.Duration

	// data contains arbitrary user data. The retryx library does not
	// touch this field; classifiers, waiters, and event handlers
	// interact with it via the Value and SetValue methods.
	data context.Context
}

// StatusCode returns the status code of the structured failure from the
// most recent attempt. If there is no structured failure, 0 is
// returned.
//
// A zero value is returned if the most recent attempt succeeded, if it
// failed with an error that does not wrap a *Failure (for example a
// transport error), if a current attempt is underway, or before the
// execution starts.
func (s *State) StatusCode() int {
	if s.Failure == nil {
		return 0
	}

	return s.Failure.StatusCode
}

// Header returns the value of the named header carried by the
// structured failure from the most recent attempt. The lookup is
// case-insensitive, so Header("retry-after") and Header("Retry-After")
// are equivalent. If there is no structured failure, or the failure
// carries no header with the given name, the empty string is returned.
//
// If the failure's header map contains several keys differing only in
// case, it is unspecified which key's value is returned.
func (s *State) Header(name string) string {
	if s.Failure == nil || s.Failure.Header == nil {
		return ""
	}

	if v := s.Failure.Header.Get(name); v != "" {
		return v
	}

	// Get only finds canonically-formatted keys. Hand-built failures
	// may carry arbitrary key casing.
	for k, vs := range s.Failure.Header {
		if len(vs) > 0 && strings.EqualFold(k, name) {
			return vs[0]
		}
	}

	return ""
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start. The
// return value is thus monotonically increasing over the life of the
// execution, and becomes static once the execution has ended.
func (s *State) Duration() time.Duration {
	if !s.Started() {
		return time.Duration(0)
	} else if !s.Ended() {
		return time.Since(s.Start)
	}

	return s.End.Sub(s.Start)
}

// Started indicates whether the execution has started.
//
// If the return value is false, the execution has not started yet. If
// the return value is true, then the execution has started, and Start
// contains a non-zero time indicating the execution start time.
func (s *State) Started() bool {
	return s.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is false, the execution is still in flight. If
// the return value is true, then the execution is over, End is a
// non-zero time, and there will be no further changes to the state.
func (s *State) Ended() bool {
	return s.End != (time.Time{})
}

// SetValue allows classifiers, waiters, and event handlers to store
// arbitrary data in the execution state.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely:
//
// • it may not be nil;
//
// • it must be comparable; and
//
// • it should not be of type string or any other built-in type, to
// avoid collisions between different handlers putting data into the
// same execution state.
func (s *State) SetValue(key, value any) {
	ctx := s.data
	if ctx == nil {
		ctx = context.Background()
	}

	s.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution state for
// key, or nil if there is no value associated with key.
func (s *State) Value(key any) any {
	ctx := s.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
