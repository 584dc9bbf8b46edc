// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"github.com/gogama/retryx/attempt"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in an Executor.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("retryx: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, s *attempt.State) {
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, s)
	}
}

func run(chain []Handler, evt Event, s *attempt.State) {
	for _, h := range chain {
		h.Handle(evt, s)
	}
}

// A Handler handles the occurrence of an event during an execution.
type Handler interface {
	Handle(Event, *attempt.State)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with the appropriate
// signature, HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *attempt.State)

// Handle calls f(evt, s).
func (f HandlerFunc) Handle(evt Event, s *attempt.State) {
	f(evt, s)
}
