// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package attempt contains the core types Failure (describes a failed
attempt) and State (describes the progress of a retryable execution).
These two types are fundamental to writing and consuming retry policies.

The first core type is Failure, the structured error an operation
returns to describe a protocol-level failure such as a non-2XX HTTP
response. A Failure carries the status code of the failed attempt and,
optionally, a header map with response metadata such as the Retry-After
header. Status-based retry classifiers and header-driven waiters only
ever act on structured failures; an operation error which neither is nor
wraps a Failure is opaque to them.

Return a Failure from an operation to make its outcome visible to the
retry policy:

	resp, err := doer.Do(req)
	if err != nil {
		return err // transport error, opaque to status classifiers
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return attempt.ResponseFailure(resp)
	}

The second core type is State, which represents the progress of one
execution of a retryable operation. State is the input type for the
callbacks invoked during an execution: retry classifiers, waiters, and
event handlers. You will typically not allocate State instances
yourself, but will instead work with the ones handed out by the
executor's attempt loop.
*/
package attempt
