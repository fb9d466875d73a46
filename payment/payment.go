// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the cash side of the marketplace
//
// a plain per-wallet balance of payment currency, with no attribution
// of any kind.  Deposits and withdrawals are administrator operations;
// the order book moves cash between buyer and seller inside its own
// transaction so a fill settles both legs atomically.
package payment

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/storage"
)

// globals
type paymentData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData paymentData

// Initialise - set up the payment subsystem
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("payment")
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

// CashEvent - broadcast after a committed deposit or withdrawal
type CashEvent struct {
	Wallet string
	Amount *big.Int
}

// Balance - cash balance of a wallet
func Balance(wallet string) *big.Int {
	return new(big.Int).SetBytes(storage.Pool.Cash.Get([]byte(wallet)))
}

// read a cash balance inside a transaction
func getBalance(trx storage.Transaction, wallet string) *big.Int {
	return new(big.Int).SetBytes(trx.Get(storage.Pool.Cash, []byte(wallet)))
}

// store a cash balance, removing the record when it reaches zero
func setBalance(trx storage.Transaction, wallet string, balance *big.Int) {
	if 0 == balance.Sign() {
		trx.Delete(storage.Pool.Cash, []byte(wallet))
		return
	}
	trx.Put(storage.Pool.Cash, []byte(wallet), balance.Bytes())
}

// Debit - stage removal of cash from a wallet
//
// part of the caller's transaction; fails without staging anything if
// the balance is too low
func Debit(trx storage.Transaction, wallet string, amount *big.Int) error {
	balance := getBalance(trx, wallet)
	if balance.Cmp(amount) < 0 {
		return fault.InsufficientFunds
	}
	setBalance(trx, wallet, new(big.Int).Sub(balance, amount))
	return nil
}

// Credit - stage addition of cash to a wallet
//
// part of the caller's transaction
func Credit(trx storage.Transaction, wallet string, amount *big.Int) {
	balance := getBalance(trx, wallet)
	setBalance(trx, wallet, new(big.Int).Add(balance, amount))
}

// Deposit - administrator addition of cash to a wallet
func Deposit(caller string, wallet string, amount *big.Int) error {

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

	Credit(trx, wallet, amount)

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("deposit: %q amount: %s", wallet, amount)
	messagebus.Send("cash.deposited", CashEvent{
		Wallet: wallet,
		Amount: amount,
	})

	return nil
}

// Withdraw - administrator removal of cash from a wallet
func Withdraw(caller string, wallet string, amount *big.Int) error {

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

	err = Debit(trx, wallet, amount)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("withdraw: %q amount: %s", wallet, amount)
	messagebus.Send("cash.withdrawn", CashEvent{
		Wallet: wallet,
		Amount: amount,
	})

	return nil
}
