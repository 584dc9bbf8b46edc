// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retryx runs fallible operations with retry support, tuned for
rate-limited APIs, within a simple and familiar interface.

Create an Executor to begin running operations.

	x := &retryx.Executor{}
	err := x.Execute(ctx, func(ctx context.Context) error {
		return callFlakyService(ctx)
	})

The zero value executor retries rejections with HTTP status 429 (Too
Many Requests) up to three attempts, waiting out the server's
Retry-After header between attempts and falling back to a one second
wait when the server does not send one. An operation signals a
rejection by returning an error that is, or wraps, an
*attempt.Failure:

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return attempt.ResponseFailure(res)
	}

For control over the executor's retry decisions and timing, create a
custom retry policy using components from package policy:

	waiter := policy.NewRetryAfterWaiter(policy.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now()))
	x := retryx.NewExecutor(policy.New(policy.DefaultClassifier, waiter), 5)

To hook into the fine-grained details of the executor's retry loop,
install a handler into the appropriate handler chain:

	log := log.New(os.Stdout, "", log.LstdFlags)
	handlers := &retryx.HandlerGroup{}
	handlers.PushBack(retryx.BeforeWait, retryx.HandlerFunc(
		func(_ retryx.Event, s *attempt.State) {
			log.Printf("attempt %d of %d failed, waiting %s", s.Attempt, s.MaxAttempts, s.Wait)
		}),
	)
	x := &retryx.Executor{
		Handlers: handlers,
	}

Package retryx provides a basic interface wrapping the executor's
Execute method (Runner) and utility functions for working with a
Runner (Do and Get). Get issues HTTP GET requests through a Runner,
converting rejection status codes into *attempt.Failure errors so the
default policy can read them, and Do adapts operations that produce a
value.
*/
package retryx
