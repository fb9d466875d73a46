// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the attributed token ledger
//
// tracks a total balance per wallet together with a record of which
// plot each token was originally allocated against.  A wallet has an
// ordered list of plots it currently holds tokens from and a per plot
// attributed amount; the sum of the attributed amounts never exceeds
// the balance.  The gap is the untracked portion created by
// administrative minting.
//
// every outgoing movement consumes attribution starting from the most
// recently acquired plot and carries it to the receiving wallet, so a
// token's plot of origin survives any chain of transfers
package ledger

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/storage"
	"github.com/gelephu/landd/util"
)

// globals
type ledgerData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData ledgerData

// Initialise - set up the ledger subsystem
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ledger")
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

// attributionKey - the composite key for one (wallet, plot) pair
//
// the wallet is length prefixed so that two different pairs can never
// pack to the same key
func attributionKey(wallet string, plotId string) []byte {
	key := util.Packed{}.AppendString(wallet)
	return append(key, plotId...)
}

// read a wallet balance inside a transaction
func getBalance(trx storage.Transaction, wallet string) *big.Int {
	return new(big.Int).SetBytes(trx.Get(storage.Pool.Balances, []byte(wallet)))
}

// store a wallet balance, removing the record when it reaches zero
func setBalance(trx storage.Transaction, wallet string, balance *big.Int) {
	if 0 == balance.Sign() {
		trx.Delete(storage.Pool.Balances, []byte(wallet))
		return
	}
	trx.Put(storage.Pool.Balances, []byte(wallet), balance.Bytes())
}

// read an attributed amount inside a transaction
func getAttributed(trx storage.Transaction, wallet string, plotId string) *big.Int {
	return new(big.Int).SetBytes(trx.Get(storage.Pool.Attribution, attributionKey(wallet, plotId)))
}

// store an attributed amount, removing the record when it reaches zero
func setAttributed(trx storage.Transaction, wallet string, plotId string, amount *big.Int) {
	key := attributionKey(wallet, plotId)
	if 0 == amount.Sign() {
		trx.Delete(storage.Pool.Attribution, key)
		return
	}
	trx.Put(storage.Pool.Attribution, key, amount.Bytes())
}

// read a wallet's ordered plot list inside a transaction
//
// oldest acquisition first; the tail is the most recently acquired
// plot and the first to be consumed by an outgoing movement
func getPlotList(trx storage.Transaction, wallet string) []string {
	record := trx.Get(storage.Pool.HolderPlots, []byte(wallet))
	if nil == record {
		return nil
	}
	list := []string(nil)
	u := util.NewUnpacker(record)
	for u.More() {
		list = append(list, u.String())
	}
	if !u.Done() {
		logger.Panicf("ledger: corrupted plot list for wallet: %q", wallet)
	}
	return list
}

// store a wallet's ordered plot list, removing the record when empty
func setPlotList(trx storage.Transaction, wallet string, list []string) {
	if 0 == len(list) {
		trx.Delete(storage.Pool.HolderPlots, []byte(wallet))
		return
	}
	record := util.Packed{}
	for _, plotId := range list {
		record = record.AppendString(plotId)
	}
	trx.Put(storage.Pool.HolderPlots, []byte(wallet), record)
}

// Balance - total token balance of a wallet
func Balance(wallet string) *big.Int {
	return new(big.Int).SetBytes(storage.Pool.Balances.Get([]byte(wallet)))
}

// Attributed - tokens a wallet holds that trace back to one plot
func Attributed(wallet string, plotId string) *big.Int {
	return new(big.Int).SetBytes(storage.Pool.Attribution.Get(attributionKey(wallet, plotId)))
}

// PlotList - the plots a wallet currently holds tokens from
//
// ordered oldest acquisition first
func PlotList(wallet string) []string {
	record := storage.Pool.HolderPlots.Get([]byte(wallet))
	if nil == record {
		return nil
	}
	list := []string(nil)
	u := util.NewUnpacker(record)
	for u.More() {
		list = append(list, u.String())
	}
	if !u.Done() {
		logger.Panicf("ledger: corrupted plot list for wallet: %q", wallet)
	}
	return list
}
