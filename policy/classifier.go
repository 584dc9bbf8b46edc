// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package policy

import (
	"net/http"
	"time"

	"github.com/gogama/retryx/attempt"
	"github.com/gogama/retryx/transient"
)

// A Classifier decides whether a failed attempt may be retried.
//
// Implementations of Classifier must be safe for concurrent use by
// multiple goroutines. A Classifier must be total: whatever the state
// of the failed attempt, it returns a plain yes or no, classifying
// anything it cannot interpret as non-retryable.
//
// Use the built-in constructors StatusCode and Before, and the
// built-in classifier TransientErr; or implement your own Classifier.
// Use ClassifierFunc to convert an ordinary function into a
// Classifier, and to compose classifiers logically using
// ClassifierFunc.And and ClassifierFunc.Or.
type Classifier interface {
	Retryable(s *attempt.State) bool
}

// The ClassifierFunc type is an adapter to allow the use of ordinary
// functions as retry classifiers. It implements the Classifier
// interface, and also provides the logical composition methods And
// and Or.
//
// Every ClassifierFunc must be safe for concurrent use by multiple
// goroutines.
//
// Simple ClassifierFunc functions can be composed into complex
// decision trees using the logical composition functions
// ClassifierFunc.And and ClassifierFunc.Or. Because of this
// composition ability, it will often be convenient to work directly
// with ClassifierFunc rather than with Classifier.
type ClassifierFunc func(s *attempt.State) bool

// DefaultClassifier is the classifier used when no explicit classifier
// is configured. It indicates a retry if, and only if, the most recent
// attempt failed with a structured failure whose status code is 429
// (Too Many Requests).
//
// Any other outcome, whether a different status code or an error
// carrying no status code at all (for example a transport error), is
// classified non-retryable. To retry a different status code, or a
// wider set of codes, construct a classifier with StatusCode.
var DefaultClassifier = StatusCode(http.StatusTooManyRequests)

// TransientErr is a classifier that indicates a retry if the current
// attempt error is transient according to transient.Categorize.
//
// TransientErr only looks at the attempt error; a structured failure
// carrying a status code is never transient. Compose it with other
// classifiers, for example a status code classifier constructed with
// StatusCode, to get more complex functionality.
var TransientErr ClassifierFunc = transientErr

// Retryable returns true if the failed attempt may be retried, and
// false otherwise, after examining the current execution state.
func (f ClassifierFunc) Retryable(s *attempt.State) bool {
	return f(s)
}

// And composes two retry classifiers into a new classifier which
// returns true if both sub-classifiers return true, and false
// otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f ClassifierFunc) And(g ClassifierFunc) ClassifierFunc {
	return func(s *attempt.State) bool {
		return f(s) && g(s)
	}
}

// Or composes two retry classifiers into a new classifier which
// returns true if either of the two sub-classifiers returns true, but
// false if they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f ClassifierFunc) Or(g ClassifierFunc) ClassifierFunc {
	return func(s *attempt.State) bool {
		return f(s) || g(s)
	}
}

// StatusCode constructs a retry classifier keyed on the failure status
// code. If the most recent attempt within the execution failed with a
// structured failure, and the failure's status code is contained in
// the list ss, the classifier returns true. Otherwise, including when
// the attempt error carries no status code at all, it returns false.
func StatusCode(ss ...int) ClassifierFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(s *attempt.State) bool {
		for _, c := range ss2 {
			if s.StatusCode() == c {
				return true
			}
		}
		return false
	}
}

// Before constructs a retry classifier allowing retries until a
// certain amount of time has elapsed since the start of the execution.
// The returned classifier returns true while the execution duration is
// less than d, and false afterward.
func Before(d time.Duration) ClassifierFunc {
	return func(s *attempt.State) bool {
		return s.Duration() < d
	}
}

func transientErr(s *attempt.State) bool {
	return transient.Is(s.Err)
}
