// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/big"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/storage"
)

// one debited slice of attribution awaiting credit
type consumption struct {
	plotId string
	take   *big.Int
}

// MoveAttributed - move tokens between wallets carrying attribution
//
// the staged changes are part of the caller's transaction: nothing is
// visible unless the caller commits
//
// attribution is consumed from the sending wallet's plot list tail
// (most recently acquired plot first) and credited to the receiving
// wallet in the same order, appending plots new to the receiver at
// the end of its list.  Any amount beyond the sender's attributed
// total is untracked balance and moves without attribution.
//
// a zero amount is a no-op, never an error; nil and negative amounts
// are rejected
func MoveAttributed(trx storage.Transaction, from string, to string, amount *big.Int) error {

	if nil == amount || amount.Sign() < 0 {
		return fault.InvalidAmount
	}

	if 0 == amount.Sign() {
		return nil
	}

	fromBalance := getBalance(trx, from)
	if fromBalance.Cmp(amount) < 0 {
		return fault.InsufficientFunds
	}

	setBalance(trx, from, new(big.Int).Sub(fromBalance, amount))
	toBalance := getBalance(trx, to)
	setBalance(trx, to, new(big.Int).Add(toBalance, amount))

	// debit pass: newest acquisition first
	list := getPlotList(trx, from)
	schedule := []consumption(nil)
	remaining := new(big.Int).Set(amount)

	n := len(list)
debit:
	for i := n - 1; i >= 0; i -= 1 {
		if 0 == remaining.Sign() {
			break debit
		}

		plotId := list[i]
		attributed := getAttributed(trx, from, plotId)

		take := attributed
		if remaining.Cmp(attributed) < 0 {
			take = remaining
		}
		take = new(big.Int).Set(take)

		left := new(big.Int).Sub(attributed, take)
		setAttributed(trx, from, plotId, left)
		if 0 == left.Sign() {
			list = append(list[:i], list[i+1:]...)
		}

		schedule = append(schedule, consumption{
			plotId: plotId,
			take:   take,
		})
		remaining.Sub(remaining, take)
	}
	if len(list) != n {
		setPlotList(trx, from, list)
	}

	// credit pass: same order as debited, so the receiver's list ends
	// with the sender's most recent plots as its own most recent
	toList := getPlotList(trx, to)
	listChanged := false
	for _, c := range schedule {
		attributed := getAttributed(trx, to, c.plotId)
		if 0 == attributed.Sign() {
			toList = append(toList, c.plotId)
			listChanged = true
		}
		setAttributed(trx, to, c.plotId, new(big.Int).Add(attributed, c.take))
	}
	if listChanged {
		setPlotList(trx, to, toList)
	}

	return nil
}

// MintAttributed - create tokens attributed to a plot
//
// increases the wallet balance and credits the whole amount to the
// (wallet, plot) pair, appending the plot to the wallet's list if it
// is not already held.  Used by plot registration and allocation; the
// staged changes are part of the caller's transaction.
func MintAttributed(trx storage.Transaction, wallet string, plotId string, amount *big.Int) {

	balance := getBalance(trx, wallet)
	setBalance(trx, wallet, new(big.Int).Add(balance, amount))

	attributed := getAttributed(trx, wallet, plotId)
	if 0 == attributed.Sign() {
		list := getPlotList(trx, wallet)
		setPlotList(trx, wallet, append(list, plotId))
	}
	setAttributed(trx, wallet, plotId, new(big.Int).Add(attributed, amount))
}
