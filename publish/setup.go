// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - event broadcasting over ZeroMQ
//
// drains the messagebus queue and publishes each committed event on a
// PUB socket as a two frame message: the event name, then the payload
// as JSON.  Subscribers filter by event name prefix in the usual
// ZeroMQ way.  Events are notifications, not authoritative state: a
// subscriber that misses one resynchronises from the RPC queries.
package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/background"
	"github.com/gelephu/landd/fault"
)

// Configuration - publisher settings from the configuration file
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// globals for background process
type publishData struct {
	sync.RWMutex

	log *logger.L

	brdc broadcaster

	background *background.T

	initialised bool
}

var globalData publishData

// Initialise - start the publisher
//
// an empty broadcast list disables publishing entirely
func Initialise(configuration *Configuration) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		globalData.log.Info("no broadcast addresses: publishing disabled")
		globalData.initialised = true
		return nil
	}

	if err := globalData.brdc.initialise(configuration.Broadcast); nil != err {
		return err
	}

	globalData.initialised = true

	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
