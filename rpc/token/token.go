// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/rpc/ratelimit"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for RPC
type Token struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Token {
	return &Token{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitToken, rateBurstToken),
		IsNormalMode: isNormalMode,
	}
}

// Transfer
// --------

// TransferArguments - arguments for a transfer
type TransferArguments struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount *big.Int `json:"amount"`
}

// TransferReply - sender balance after the transfer
type TransferReply struct {
	Balance *big.Int `json:"balance"`
}

// Transfer - move tokens between wallets keeping attribution
func (t *Token) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	log := t.Log
	log.Infof("Token.Transfer: %+v", arguments)

	if !t.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := ledger.Transfer(arguments.From, arguments.To, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = ledger.Balance(arguments.From)

	return nil
}

// Administrative mint and burn
// ----------------------------

// AdminArguments - arguments for mint and burn
type AdminArguments struct {
	Caller string   `json:"caller"`
	Wallet string   `json:"wallet"`
	Amount *big.Int `json:"amount"`
}

// AdminReply - target balance after the operation
type AdminReply struct {
	Balance *big.Int `json:"balance"`
}

// Mint - create untracked tokens in a wallet
func (t *Token) Mint(arguments *AdminArguments, reply *AdminReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	log := t.Log
	log.Infof("Token.Mint: %+v", arguments)

	if !t.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := ledger.MintUntracked(arguments.Caller, arguments.Wallet, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = ledger.Balance(arguments.Wallet)

	return nil
}

// Burn - destroy untracked tokens in a wallet
func (t *Token) Burn(arguments *AdminArguments, reply *AdminReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	log := t.Log
	log.Infof("Token.Burn: %+v", arguments)

	if !t.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := ledger.BurnUntracked(arguments.Caller, arguments.Wallet, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = ledger.Balance(arguments.Wallet)

	return nil
}

// Queries
// -------

// BalanceArguments - arguments for a balance query
type BalanceArguments struct {
	Wallet string `json:"wallet"`
}

// BalanceReply - a wallet's total token balance
type BalanceReply struct {
	Balance *big.Int `json:"balance"`
}

// Balance - total token balance of a wallet
func (t *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	reply.Balance = ledger.Balance(arguments.Wallet)

	return nil
}

// AttributedArguments - arguments for an attribution query
type AttributedArguments struct {
	Wallet string `json:"wallet"`
	PlotId string `json:"plotId"`
}

// AttributedReply - tokens of a wallet attributed to one plot
type AttributedReply struct {
	Amount *big.Int `json:"amount"`
}

// Attributed - tokens a wallet holds against one plot
func (t *Token) Attributed(arguments *AttributedArguments, reply *AttributedReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	reply.Amount = ledger.Attributed(arguments.Wallet, arguments.PlotId)

	return nil
}

// PlotsReply - plot ids a wallet holds attribution against
type PlotsReply struct {
	PlotIds []string `json:"plotIds"`
}

// Plots - plot ids in the wallet's acquisition order, oldest first
func (t *Token) Plots(arguments *BalanceArguments, reply *PlotsReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	reply.PlotIds = ledger.PlotList(arguments.Wallet)

	return nil
}
