// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/gelephu/landd/background"
)

type counterProcess struct {
	ticks int64
}

func (p *counterProcess) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			atomic.AddInt64(&p.ticks, 1)
		}
	}
}

func TestStartStop(t *testing.T) {

	first := &counterProcess{}
	second := &counterProcess{}

	processes := background.Processes{first, second}

	handle := background.Start(processes, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	handle.Stop()

	if 0 == atomic.LoadInt64(&first.ticks) {
		t.Error("first process never ran")
	}
	if 0 == atomic.LoadInt64(&second.ticks) {
		t.Error("second process never ran")
	}

	// after Stop returns, processes have finished: counts are stable
	before := atomic.LoadInt64(&first.ticks)
	time.Sleep(50 * time.Millisecond)
	if before != atomic.LoadInt64(&first.ticks) {
		t.Error("process still running after stop")
	}
}

func TestStopNil(t *testing.T) {
	var handle *background.T
	handle.Stop() // must not panic
}
