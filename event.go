// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in an Executor to extend it with
// custom functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// execution starts.
	//
	// When Executor fires BeforeExecutionStart, the attempt state is
	// non-nil but the only field that has been set is the maximum
	// attempt count.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual operation attempt during the execution.
	//
	// When Executor fires BeforeAttempt, the state's attempt number is
	// set to the number of the attempt that WILL BE made after all
	// BeforeAttempt handlers have finished. Attempts are numbered from
	// one.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after an operation
	// attempt is concluded, regardless of whether it concluded
	// successfully or not.
	//
	// When Executor fires AfterAttempt, the state's error field holds
	// the attempt outcome: nil on success, and the verbatim operation
	// error on failure. If the error is, or wraps, a structured
	// failure, the state's failure field references it.
	//
	// Note that AfterAttempt always fires on every operation attempt,
	// and that it runs before the retry policy is consulted for a
	// retry decision.
	AfterAttempt
	// BeforeWait identifies the event that occurs after the retry
	// policy has scheduled a retry but before the executor starts
	// waiting it out.
	//
	// When Executor fires BeforeWait, the state's wait field is set to
	// the delay the retry policy computed, which is the delay the
	// executor WILL wait after all BeforeWait handlers have finished,
	// unless the context is cancelled first.
	//
	// Note that BeforeWait never fires after the final attempt: an
	// execution that ends, for whatever reason, does not wait.
	BeforeWait
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends.
	//
	// When Executor fires AfterExecutionEnd, the state is in the same
	// state it was in after the final operation attempt (and last
	// AfterAttempt event) EXCEPT that the end time is set to the time
	// the execution ended and, if the execution was cancelled, the
	// error field holds the context error.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"BeforeWait",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// execution by Executor, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		BeforeWait,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
