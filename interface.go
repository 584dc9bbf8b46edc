// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"context"
	"io"
	"net/http"

	"github.com/gogama/retryx/attempt"
)

// Runner is the interface that wraps the basic Execute method.
//
// Execute runs a fallible operation, retrying failed attempts, and
// returns the error of the final attempt (nil if an attempt
// succeeded). Executor implements the Runner interface, and any other
// Runner implementation must behave substantially the same as
// Executor.Execute.
type Runner interface {
	Execute(ctx context.Context, op Operation) error
}

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// Do runs an operation that produces a value, using the specified
// Runner for retries. It adapts op, which returns a value alongside
// its error, to the plain Operation consumed by Runner.Execute.
//
// The value returned is the value of the final attempt. If the
// execution failed, Do returns the zero value of T and the error,
// exactly as the Runner returned it.
//
// Do panics if r or op is nil.
func Do[T any](ctx context.Context, r Runner, op func(ctx context.Context) (T, error)) (T, error) {
	if r == nil {
		panic("retryx: nil runner")
	}
	if op == nil {
		panic("retryx: nil operation")
	}

	var value T
	err := r.Execute(ctx, func(ctx context.Context) error {
		var attemptErr error
		value, attemptErr = op(ctx)
		return attemptErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Get issues GET requests to the specified URL, using the specified
// Runner for retries, and returns the final HTTP response.
//
// Each attempt sends one GET request via the HTTPDoer d. If d is nil,
// http.DefaultClient from the standard net/http package is used. A
// response with a 2xx status code concludes the attempt successfully,
// and Get returns the response with its body unread, ready for the
// caller to consume and close. Any other status code concludes the
// attempt with an *attempt.Failure recording the status code and the
// response headers; the response body is drained and closed so the
// underlying connection can be reused. An error sending the request,
// or building it, concludes the attempt with that error, verbatim.
//
// The error returned is the error of the final attempt, following the
// Runner's retry policy: an *attempt.Failure for a rejection carrying
// a status code, or the transport error otherwise. When the error is
// non-nil the response is nil.
//
// Get panics if r is nil.
func Get(ctx context.Context, r Runner, d HTTPDoer, url string) (*http.Response, error) {
	if r == nil {
		panic("retryx: nil runner")
	}
	if d == nil {
		d = http.DefaultClient
	}

	var resp *http.Response
	err := r.Execute(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if reqErr != nil {
			return reqErr
		}
		res, doErr := d.Do(req)
		if doErr != nil {
			return doErr
		}
		if res.StatusCode < 200 || res.StatusCode > 299 {
			f := attempt.ResponseFailure(res)
			_, _ = io.Copy(io.Discard, res.Body)
			_ = res.Body.Close()
			return f
		}
		resp = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
