// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/big"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/storage"
)

// MintEvent - broadcast after a committed administrative mint or burn
type MintEvent struct {
	Wallet string
	Amount *big.Int
}

// MintUntracked - administrator token creation without attribution
//
// only the total balance changes: the minted tokens belong to no plot
// and are the last to move on a transfer out
func MintUntracked(caller string, wallet string, amount *big.Int) error {

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

	balance := getBalance(trx, wallet)
	setBalance(trx, wallet, new(big.Int).Add(balance, amount))

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("mint: %q amount: %s", wallet, amount)
	messagebus.Send("token.minted", MintEvent{
		Wallet: wallet,
		Amount: amount,
	})

	return nil
}

// BurnUntracked - administrator token destruction without attribution
//
// fails if the wallet balance is too low, but does not inspect the
// attributed amounts: burning below a wallet's attributed total is
// allowed and leaves the surplus attribution in place until the next
// transfer out consumes it
func BurnUntracked(caller string, wallet string, amount *big.Int) error {

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

	balance := getBalance(trx, wallet)
	if balance.Cmp(amount) < 0 {
		trx.Abort()
		return fault.InsufficientFunds
	}
	setBalance(trx, wallet, new(big.Int).Sub(balance, amount))

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("burn: %q amount: %s", wallet, amount)
	messagebus.Send("token.burned", MintEvent{
		Wallet: wallet,
		Amount: amount,
	})

	return nil
}
