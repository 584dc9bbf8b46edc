// Copyright 2021 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"fmt"
	"testing"

	"github.com/gogama/retryx/attempt"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var states []*attempt.State
	h1 := &testHandler{seq: 1, evts: &evts, states: &states}
	h2 := &testHandler{seq: 2, evts: &evts, states: &states}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.Panics(t, func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(AfterAttempt, h1)
	})
	t.Run("run", func(t *testing.T) {
		s1 := &attempt.State{Attempt: 1}
		s2 := &attempt.State{Attempt: 2}
		assert.Empty(t, evts)
		assert.Empty(t, states)
		g.run(BeforeWait, s1)
		assert.Empty(t, evts)
		assert.Empty(t, states)
		g.run(BeforeExecutionStart, s1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*attempt.State{s1, s1}, states)
		evts = evts[:0]
		states = states[:0]
		g.run(AfterAttempt, s2)
		assert.Equal(t, []string{"1.AfterAttempt"}, evts)
		assert.Equal(t, []*attempt.State{s2}, states)
		evts = evts[:0]
		states = states[:0]
		g.run(BeforeExecutionStart, s2)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*attempt.State{s2, s2}, states)
	})
}

type testHandler struct {
	seq    int
	evts   *[]string
	states *[]*attempt.State
}

func (h *testHandler) Handle(evt Event, s *attempt.State) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.states = append(*h.states, s)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _s *attempt.State
	var f = func(evt Event, s *attempt.State) {
		_evt = evt
		_s = s
	}
	h := HandlerFunc(f)
	s := &attempt.State{}
	h.Handle(BeforeWait, s)

	assert.Equal(t, BeforeWait, _evt)
	assert.Same(t, s, _s)
}
