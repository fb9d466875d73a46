// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package holding - read-only aggregation over ledger and registry
//
// composes a wallet's balance, cumulative trade totals and the full
// breakdown of its holdings by plot of origin; no function in this
// package mutates anything
package holding

import (
	"math/big"

	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/payment"
	"github.com/gelephu/landd/plot"
	"github.com/gelephu/landd/trading"
)

// PlotHolding - one plot's record joined with the wallet's attribution
type PlotHolding struct {
	Plot       plot.Plot `json:"plot"`
	Attributed *big.Int  `json:"attributed"`
}

// Info - everything known about a wallet's position
type Info struct {
	Balance  *big.Int      `json:"balance"`
	Cash     *big.Int      `json:"cash"`
	Proceeds *big.Int      `json:"proceeds"`
	Bought   *big.Int      `json:"bought"`
	Sold     *big.Int      `json:"sold"`
	PlotIds  []string      `json:"plotIds"`
	Holdings []PlotHolding `json:"holdings"`
}

// GetInfo - assemble a wallet's full position
//
// the holdings appear in the wallet's acquisition order, oldest
// first; a plot whose attribution has dropped to zero is absent
func GetInfo(wallet string) (*Info, error) {

	plotIds := ledger.PlotList(wallet)
	counters := trading.GetCounters(wallet)

	holdings := make([]PlotHolding, 0, len(plotIds))
	for _, plotId := range plotIds {
		p, err := plot.Get(plotId)
		if nil != err {
			return nil, err
		}
		holdings = append(holdings, PlotHolding{
			Plot:       *p,
			Attributed: ledger.Attributed(wallet, plotId),
		})
	}

	return &Info{
		Balance:  ledger.Balance(wallet),
		Cash:     payment.Balance(wallet),
		Proceeds: counters.Proceeds,
		Bought:   counters.Bought,
		Sold:     counters.Sold,
		PlotIds:  plotIds,
		Holdings: holdings,
	}, nil
}
