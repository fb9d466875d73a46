// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plot

import (
	"math/big"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/storage"
)

// Config pool key for the conversion rate
var rateKey = []byte("rate")

// RateEvent - broadcast after a committed rate change
type RateEvent struct {
	OldRate *big.Int
	Rate    *big.Int
}

// SetRate - set the tokens-per-land-value conversion rate
//
// administrator only; the rate is scaled fixed point (tokens have 18
// decimal places) and must be set before the first registration
func SetRate(caller string, rate *big.Int) error {

	if !authority.IsAdministrator(caller) {
		return fault.NotAuthorised
	}
	if nil == rate || rate.Sign() <= 0 {
		return fault.ZeroRate
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	oldRate := new(big.Int).SetBytes(trx.Get(storage.Pool.Config, rateKey))
	trx.Put(storage.Pool.Config, rateKey, rate.Bytes())

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("rate set to: %s", rate)
	messagebus.Send("rate.updated", RateEvent{
		OldRate: oldRate,
		Rate:    rate,
	})

	return nil
}

// Rate - the current conversion rate, zero if never set
func Rate() *big.Int {
	return new(big.Int).SetBytes(storage.Pool.Config.Get(rateKey))
}
