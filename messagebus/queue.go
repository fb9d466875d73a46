// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - the event queue for the daemon
//
// every mutating ledger operation sends exactly one message after its
// transaction has been committed; the publish subsystem drains the
// queue and broadcasts the events to subscribers
package messagebus

// internal constants
const (
	queueSize = 1000
)

// Message - event name plus its payload
type Message struct {
	From string
	Item interface{}
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)
)

// Send - data to queue
//
// drops the message when the queue is full rather than blocking the
// ledger operation that emitted it; events are notifications, not
// authoritative state
func Send(from string, item interface{}) {
	select {
	case queue <- Message{From: from, Item: item}:
	default:
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}
