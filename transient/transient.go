// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by the Categorize function.
//
// The category Not means the error is not transient from the
// perspective of completing an operation attempt successfully, or in
// other words that retrying the attempt after encountering this error
// is very unlikely to succeed.
//
// All other categories indicate the error is transient, meaning a
// retry of the attempt has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The remote service may
	// be going through a temporary period of slowness, or a future
	// attempt may succeed if the caller waits longer.
	//
	// Categorize returns Timeout if the error, or any of its wrapped
	// causes, has a Timeout() method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// corresponding to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal can be a permanent condition, it is
	// classified as transient because it also happens while the service
	// on the remote host is starting or restarting: the service is
	// temporarily not listening on its port, but will be once startup
	// completes.
	//
	// Categorize returns ConnRefused if the error is not a Timeout, and
	// the error or any of its wrapped causes is syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// connection, corresponding to the POSIX error code ECONNRESET.
	//
	// A reset typically means the remote service went down while
	// handling the attempt, or a load balancer dropped the connection.
	// Both tend to clear quickly, so a reset indicates a high
	// probability of success on retry.
	//
	// Categorize returns ConnReset if the error is not a Timeout, and
	// the error or any of its wrapped causes is syscall.ECONNRESET.
	ConnReset
)

// Categorize returns the transience category of the given error. All
// transient errors result in a category other than Not. A nil error,
// and an error that is not transient from the perspective of
// completing an operation attempt, both produce Not.
//
// In assessing transience, Categorize looks at the wrapped cause errors
// contained within err, not just err itself. It never consults a
// Temporary() method, as the semantics of Temporary() are not clear
// enough to base retry decisions on.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t hasTimeout
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		}
	}

	return Not
}

// Is reports whether the given error is transient, i.e. whether
// Categorize assigns it any category other than Not. It is a
// convenience for retry classifiers that only care about the yes/no
// answer.
func Is(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
