// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package plot - the land plot registry
//
// plots are administratively registered records of surveyed land.
// registration mints tokens against the plot's assessed value at the
// configured rate and attributes them to the plot's wallet; further
// allocations are additive.  Records are never deleted and only the
// wallet field can change afterwards.
package plot

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/storage"
	"github.com/gelephu/landd/util"
)

// Plot - one registered land plot
type Plot struct {
	PlotId          string   `json:"plotId"`
	Dzongkhag       string   `json:"dzongkhag"`
	Throm           string   `json:"throm"`
	Chiwog          string   `json:"chiwog"`
	ThramNumber     string   `json:"thramNumber"`
	OwnerName       string   `json:"ownerName"`
	CitizenshipId   string   `json:"citizenshipId"`
	OwnershipType   string   `json:"ownershipType"`
	Tenure          string   `json:"tenure"`
	Zone            string   `json:"zone"`
	Classification  string   `json:"classification"`
	AreaSqFt        uint64   `json:"areaSqFt"`
	LandValue       uint64   `json:"landValue"`
	Wallet          string   `json:"wallet"`
	AllocatedTokens *big.Int `json:"allocatedTokens"`
}

// globals
type plotData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData plotData

// Initialise - set up the registry subsystem
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("plot")
	globalData.log.Info("starting…")

	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	return nil
}

// pack a plot record; the plot id is the storage key, not a field
func packPlot(p *Plot) []byte {
	return util.Packed{}.
		AppendString(p.Dzongkhag).
		AppendString(p.Throm).
		AppendString(p.Chiwog).
		AppendString(p.ThramNumber).
		AppendString(p.OwnerName).
		AppendString(p.CitizenshipId).
		AppendString(p.OwnershipType).
		AppendString(p.Tenure).
		AppendString(p.Zone).
		AppendString(p.Classification).
		AppendUint64(p.AreaSqFt).
		AppendUint64(p.LandValue).
		AppendString(p.Wallet).
		AppendBigInt(p.AllocatedTokens)
}

func unpackPlot(plotId string, record []byte) (*Plot, error) {
	u := util.NewUnpacker(record)
	p := &Plot{
		PlotId:         plotId,
		Dzongkhag:      u.String(),
		Throm:          u.String(),
		Chiwog:         u.String(),
		ThramNumber:    u.String(),
		OwnerName:      u.String(),
		CitizenshipId:  u.String(),
		OwnershipType:  u.String(),
		Tenure:         u.String(),
		Zone:           u.String(),
		Classification: u.String(),
		AreaSqFt:       u.Uint64(),
		LandValue:      u.Uint64(),
		Wallet:         u.String(),
	}
	p.AllocatedTokens = u.BigInt()
	if !u.Done() {
		return nil, fault.CorruptedRecord
	}
	return p, nil
}

// Get - fetch one plot record
func Get(plotId string) (*Plot, error) {
	record := storage.Pool.Plots.Get([]byte(plotId))
	if nil == record {
		return nil, fault.PlotNotFound
	}
	return unpackPlot(plotId, record)
}

// Exists - check a plot id without fetching the record
func Exists(plotId string) bool {
	return storage.Pool.Plots.Has([]byte(plotId))
}
