// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import (
	"fmt"
	"net/http"
)

// A Failure describes a single failed attempt whose outcome carried a
// protocol status code, for example a non-2XX HTTP response. It is the
// structured failure type understood by the retry policy machinery:
// classifiers match on its status code, and waiters read server backoff
// guidance, such as the Retry-After header, out of its header map.
//
// Operations signal a structured failure by returning a Failure, either
// directly or wrapped inside another error (the executor locates it
// with errors.As). Any other error is still surfaced to the caller
// unchanged, but exposes no status code, so status-based classifiers
// treat it as non-retryable.
//
// A Failure should be created fresh for each failed attempt and treated
// as immutable once returned.
type Failure struct {
	// StatusCode is the protocol status code describing the failure,
	// for example 429 (Too Many Requests).
	StatusCode int

	// Header optionally carries response metadata associated with the
	// failure, such as the Retry-After header on a rate-limited
	// response. It may be nil.
	Header http.Header
}

// ResponseFailure constructs a Failure from an HTTP response, taking on
// the response's status code and header.
//
// ResponseFailure does not read or close the response body. The header
// map is shared with the response, not copied, so it remains readable
// after the body is closed but should not be modified.
func ResponseFailure(resp *http.Response) *Failure {
	return &Failure{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
}

// Error returns a short description of the failure containing its
// status code.
func (f *Failure) Error() string {
	if text := http.StatusText(f.StatusCode); text != "" {
		return fmt.Sprintf("status %d %s", f.StatusCode, text)
	}
	return fmt.Sprintf("status %d", f.StatusCode)
}
