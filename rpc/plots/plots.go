// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plots

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/plot"
	"github.com/gelephu/landd/rpc/ratelimit"
)

const (
	rateLimitPlots = 200
	rateBurstPlots = 100
)

// Plots - type for RPC
type Plots struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Plots {
	return &Plots{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitPlots, rateBurstPlots),
		IsNormalMode: isNormalMode,
	}
}

// Register a plot
// ---------------

// RegisterArguments - arguments for registering a plot
type RegisterArguments struct {
	Caller string    `json:"caller"`
	Plot   plot.Plot `json:"plot"`
}

// RegisterReply - result of registering a plot
type RegisterReply struct {
	PlotId string   `json:"plotId"`
	Minted *big.Int `json:"minted"`
}

// Register - record a plot and mint its attributed tokens
func (p *Plots) Register(arguments *RegisterArguments, reply *RegisterReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	log := p.Log
	log.Infof("Plots.Register: %+v", arguments)

	if !p.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	record := arguments.Plot
	err := plot.Register(arguments.Caller, &record)
	if nil != err {
		return err
	}

	stored, err := plot.Get(record.PlotId)
	if nil != err {
		return err
	}

	reply.PlotId = stored.PlotId
	reply.Minted = stored.AllocatedTokens

	return nil
}

// Allocate extra tokens against a plot
// ------------------------------------

// AllocateArguments - arguments for a supplementary allocation
type AllocateArguments struct {
	Caller string   `json:"caller"`
	PlotId string   `json:"plotId"`
	Wallet string   `json:"wallet"`
	Amount *big.Int `json:"amount"`
}

// AllocateReply - result of a supplementary allocation
type AllocateReply struct {
	PlotId          string   `json:"plotId"`
	AllocatedTokens *big.Int `json:"allocatedTokens"`
}

// Allocate - mint additional tokens attributed to an existing plot
func (p *Plots) Allocate(arguments *AllocateArguments, reply *AllocateReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	log := p.Log
	log.Infof("Plots.Allocate: %+v", arguments)

	if !p.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := plot.Allocate(arguments.Caller, arguments.PlotId, arguments.Wallet, arguments.Amount)
	if nil != err {
		return err
	}

	stored, err := plot.Get(arguments.PlotId)
	if nil != err {
		return err
	}

	reply.PlotId = stored.PlotId
	reply.AllocatedTokens = stored.AllocatedTokens

	return nil
}

// Update the wallet recorded for a plot
// -------------------------------------

// UpdateWalletArguments - arguments for a wallet change
type UpdateWalletArguments struct {
	Caller string `json:"caller"`
	PlotId string `json:"plotId"`
	Wallet string `json:"wallet"`
}

// UpdateWalletReply - result of a wallet change
type UpdateWalletReply struct {
	PlotId string `json:"plotId"`
	Wallet string `json:"wallet"`
}

// UpdateWallet - change the wallet recorded on a plot
//
// metadata only, token attribution is not moved
func (p *Plots) UpdateWallet(arguments *UpdateWalletArguments, reply *UpdateWalletReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	log := p.Log
	log.Infof("Plots.UpdateWallet: %+v", arguments)

	if !p.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := plot.UpdateWallet(arguments.Caller, arguments.PlotId, arguments.Wallet)
	if nil != err {
		return err
	}

	reply.PlotId = arguments.PlotId
	reply.Wallet = arguments.Wallet

	return nil
}

// Conversion rate
// ---------------

// SetRateArguments - arguments for setting the conversion rate
type SetRateArguments struct {
	Caller string   `json:"caller"`
	Rate   *big.Int `json:"rate"`
}

// RateReply - the current conversion rate
type RateReply struct {
	Rate *big.Int `json:"rate"`
}

// SetRate - set the land value to token conversion rate
func (p *Plots) SetRate(arguments *SetRateArguments, reply *RateReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	log := p.Log
	log.Infof("Plots.SetRate: %+v", arguments)

	if !p.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := plot.SetRate(arguments.Caller, arguments.Rate)
	if nil != err {
		return err
	}

	reply.Rate = plot.Rate()

	return nil
}

// GetRate - fetch the current conversion rate
func (p *Plots) GetRate(arguments *struct{}, reply *RateReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	reply.Rate = plot.Rate()

	return nil
}

// Fetch one plot record
// ---------------------

// GetArguments - arguments to fetch one plot
type GetArguments struct {
	PlotId string `json:"plotId"`
}

// GetReply - one plot record
type GetReply struct {
	Plot plot.Plot `json:"plot"`
}

// Get - fetch a plot record by its id
func (p *Plots) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	log := p.Log
	log.Infof("Plots.Get: %+v", arguments)

	stored, err := plot.Get(arguments.PlotId)
	if nil != err {
		return err
	}

	reply.Plot = *stored

	return nil
}
