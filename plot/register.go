// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plot

import (
	"math/big"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/storage"
)

// RegistrationEvent - broadcast after a committed registration
type RegistrationEvent struct {
	PlotId string
	Wallet string
	Minted *big.Int
}

// AllocationEvent - broadcast after a committed extra allocation
type AllocationEvent struct {
	PlotId string
	Wallet string
	Amount *big.Int
}

// UpdateEvent - broadcast after a committed wallet change
type UpdateEvent struct {
	PlotId string
	Wallet string
}

// Register - record a new plot and mint its compensation tokens
//
// administrator only.  The minted amount is land value times the
// configured rate, attributed in full to the plot's wallet.  The
// record and the minted tokens commit together.
func Register(caller string, p *Plot) error {

	if !authority.IsAdministrator(caller) {
		return fault.NotAuthorised
	}
	if "" == p.PlotId {
		return fault.MissingParameters
	}
	if "" == p.Wallet {
		return fault.InvalidWallet
	}
	if 0 == p.LandValue {
		return fault.ZeroLandValue
	}

	rate := Rate()
	if 0 == rate.Sign() {
		return fault.RateNotSet
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	key := []byte(p.PlotId)
	if trx.Has(storage.Pool.Plots, key) {
		trx.Abort()
		return fault.PlotAlreadyExists
	}

	minted := new(big.Int).Mul(new(big.Int).SetUint64(p.LandValue), rate)
	p.AllocatedTokens = minted

	trx.Put(storage.Pool.Plots, key, packPlot(p))
	ledger.MintAttributed(trx, p.Wallet, p.PlotId, minted)

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("registered plot: %q wallet: %q minted: %s", p.PlotId, p.Wallet, minted)
	messagebus.Send("plot.registered", RegistrationEvent{
		PlotId: p.PlotId,
		Wallet: p.Wallet,
		Minted: minted,
	})

	return nil
}

// Allocate - mint extra tokens against an existing plot
//
// administrator only; the amount is added to the plot's allocated
// total and attributed to the named wallet, which need not be the
// plot's current wallet
func Allocate(caller string, plotId string, wallet string, amount *big.Int) error {

	if !authority.IsAdministrator(caller) {
		return fault.NotAuthorised
	}
	if "" == wallet {
		return fault.InvalidWallet
	}
	if nil == amount || amount.Sign() <= 0 {
		return fault.ZeroAmount
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	key := []byte(plotId)
	record := trx.Get(storage.Pool.Plots, key)
	if nil == record {
		trx.Abort()
		return fault.PlotNotFound
	}
	p, err := unpackPlot(plotId, record)
	if nil != err {
		trx.Abort()
		return err
	}

	p.AllocatedTokens = new(big.Int).Add(p.AllocatedTokens, amount)
	trx.Put(storage.Pool.Plots, key, packPlot(p))
	ledger.MintAttributed(trx, wallet, plotId, amount)

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("allocated: %s from plot: %q to wallet: %q", amount, plotId, wallet)
	messagebus.Send("plot.allocated", AllocationEvent{
		PlotId: plotId,
		Wallet: wallet,
		Amount: amount,
	})

	return nil
}

// UpdateWallet - change the wallet of record for a plot
//
// administrator only and metadata only: tokens already attributed to
// the plot stay exactly where they are
func UpdateWallet(caller string, plotId string, newWallet string) error {

	if !authority.IsAdministrator(caller) {
		return fault.NotAuthorised
	}
	if "" == newWallet {
		return fault.InvalidWallet
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	key := []byte(plotId)
	record := trx.Get(storage.Pool.Plots, key)
	if nil == record {
		trx.Abort()
		return fault.PlotNotFound
	}
	p, err := unpackPlot(plotId, record)
	if nil != err {
		trx.Abort()
		return err
	}

	p.Wallet = newWallet
	trx.Put(storage.Pool.Plots, key, packPlot(p))

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("plot: %q wallet changed to: %q", plotId, newWallet)
	messagebus.Send("plot.updated", UpdateEvent{
		PlotId: plotId,
		Wallet: newWallet,
	})

	return nil
}
