// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - the configured administrator identity
//
// a single wallet is designated as the administrator; registry
// changes, rate changes and untracked mint/burn are restricted to it
package authority

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
)

// globals
type authorityData struct {
	sync.RWMutex

	log           *logger.L
	administrator string

	initialised bool
}

var globalData authorityData

// Initialise - set up the administrator identity
func Initialise(administrator string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if "" == administrator {
		return fault.InvalidWallet
	}

	globalData.log = logger.New("authority")
	globalData.log.Info("starting…")

	globalData.administrator = administrator
	globalData.initialised = true

	return nil
}

// Finalise - clean up
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.administrator = ""
	globalData.initialised = false
	globalData.Unlock()

	return nil
}

// IsAdministrator - check a caller against the configured identity
func IsAdministrator(wallet string) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.initialised && wallet == globalData.administrator
}

// Administrator - the configured administrator wallet
func Administrator() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.administrator
}
