// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/big"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/storage"
)

// TransferEvent - broadcast after a committed transfer
type TransferEvent struct {
	From   string
	To     string
	Amount *big.Int
}

// Transfer - move tokens between wallets
//
// a complete operation: stages the movement, commits it and emits the
// event.  A zero amount commits nothing but is not an error.
func Transfer(from string, to string, amount *big.Int) error {

	if "" == from || "" == to {
		return fault.InvalidWallet
	}

	if nil == amount || amount.Sign() < 0 {
		return fault.InvalidAmount
	}

	if 0 == amount.Sign() {
		return nil
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = MoveAttributed(trx, from, to, amount)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("transfer: %q → %q amount: %s", from, to, amount)
	messagebus.Send("token.transfer", TransferEvent{
		From:   from,
		To:     to,
		Amount: amount,
	})

	return nil
}
