// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"math/big"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/messagebus"
	"github.com/gelephu/landd/payment"
	"github.com/gelephu/landd/storage"
)

// CreatedEvent - broadcast after a committed order creation
type CreatedEvent struct {
	OrderId uint64
	Seller  string
	Amount  *big.Int
	Price   *big.Int
}

// FilledEvent - broadcast after a committed fill
type FilledEvent struct {
	OrderId uint64
	Buyer   string
	Amount  *big.Int
	Cost    *big.Int
}

// CancelledEvent - broadcast after a committed cancellation
type CancelledEvent struct {
	OrderId  uint64
	Seller   string
	Returned *big.Int
}

// Fill - the settled result of one buy
type Fill struct {
	OrderId uint64
	Amount  *big.Int
	Cost    *big.Int
	Refund  *big.Int
}

// CreateSellOrder - escrow tokens and open an order
//
// the seller's tokens move to the escrow wallet immediately,
// attribution and all; they come back only through a fill to the
// buyer or a cancellation to the seller
func CreateSellOrder(seller string, amount *big.Int, price *big.Int) (uint64, error) {

	if "" == seller {
		return 0, fault.InvalidWallet
	}
	if nil == amount || amount.Sign() <= 0 {
		return 0, fault.ZeroAmount
	}
	if nil == price || price.Sign() <= 0 {
		return 0, fault.ZeroPrice
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	err = ledger.MoveAttributed(trx, seller, EscrowWallet, amount)
	if nil != err {
		trx.Abort()
		return 0, err
	}

	// order ids start at 1
	orderId, ok := trx.GetN(storage.Pool.Config, nextOrderIdKey)
	if !ok {
		orderId = 1
	}
	trx.PutN(storage.Pool.Config, nextOrderIdKey, orderId+1)

	order := &Order{
		OrderId:         orderId,
		Seller:          seller,
		AmountTotal:     amount,
		AmountRemaining: amount,
		Price:           price,
		Active:          true,
	}
	trx.Put(storage.Pool.Orders, orderKey(orderId), packOrder(order))

	err = trx.Commit()
	if nil != err {
		return 0, err
	}

	globalData.log.Infof("order: %d created by: %q amount: %s price: %s", orderId, seller, amount, price)
	messagebus.Send("order.created", CreatedEvent{
		OrderId: orderId,
		Seller:  seller,
		Amount:  amount,
		Price:   price,
	})

	return orderId, nil
}

// BuyFromOrder - buy part or all of an active order
//
// the payment is the cash the buyer commits to the purchase; the cost
// is amount × price / DecimalsFactor truncated, and only the cost
// actually leaves the buyer, so any overpayment stays untouched.  The
// cash settlement is staged after all token bookkeeping is final and
// the whole fill commits as one transaction.
func BuyFromOrder(buyer string, orderId uint64, amount *big.Int, paymentValue *big.Int) (*Fill, error) {

	if "" == buyer {
		return nil, fault.InvalidWallet
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	record := trx.Get(storage.Pool.Orders, orderKey(orderId))
	if nil == record {
		trx.Abort()
		return nil, fault.OrderNotFound
	}
	order, err := unpackOrder(orderId, record)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	if !order.Active {
		trx.Abort()
		return nil, fault.OrderNotActive
	}
	if nil == amount || amount.Sign() <= 0 {
		trx.Abort()
		return nil, fault.ZeroAmount
	}
	if amount.Cmp(order.AmountRemaining) > 0 {
		trx.Abort()
		return nil, fault.NotEnoughTokensInOrder
	}

	cost := new(big.Int).Mul(amount, order.Price)
	cost.Div(cost, DecimalsFactor)
	if nil == paymentValue || paymentValue.Cmp(cost) < 0 {
		trx.Abort()
		return nil, fault.InsufficientPayment
	}

	order.AmountRemaining = new(big.Int).Sub(order.AmountRemaining, amount)
	if 0 == order.AmountRemaining.Sign() {
		order.Active = false
	}
	trx.Put(storage.Pool.Orders, orderKey(orderId), packOrder(order))

	err = ledger.MoveAttributed(trx, EscrowWallet, buyer, amount)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	sellerCounters := getCounters(trx, order.Seller)
	sellerCounters.Proceeds = new(big.Int).Add(sellerCounters.Proceeds, cost)
	sellerCounters.Sold = new(big.Int).Add(sellerCounters.Sold, amount)
	setCounters(trx, order.Seller, sellerCounters)

	buyerCounters := getCounters(trx, buyer)
	buyerCounters.Bought = new(big.Int).Add(buyerCounters.Bought, amount)
	setCounters(trx, buyer, buyerCounters)

	// cash settlement last, after all token bookkeeping
	err = payment.Debit(trx, buyer, cost)
	if nil != err {
		trx.Abort()
		return nil, err
	}
	payment.Credit(trx, order.Seller, cost)

	err = trx.Commit()
	if nil != err {
		return nil, err
	}

	globalData.log.Infof("order: %d filled by: %q amount: %s cost: %s", orderId, buyer, amount, cost)
	messagebus.Send("order.filled", FilledEvent{
		OrderId: orderId,
		Buyer:   buyer,
		Amount:  amount,
		Cost:    cost,
	})

	return &Fill{
		OrderId: orderId,
		Amount:  amount,
		Cost:    cost,
		Refund:  new(big.Int).Sub(paymentValue, cost),
	}, nil
}

// CancelSellOrder - close an order and return the unsold tokens
//
// only the order's seller may cancel; the escrowed remainder moves
// back with its attribution intact
func CancelSellOrder(caller string, orderId uint64) (*big.Int, error) {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	record := trx.Get(storage.Pool.Orders, orderKey(orderId))
	if nil == record {
		trx.Abort()
		return nil, fault.OrderNotFound
	}
	order, err := unpackOrder(orderId, record)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	if caller != order.Seller {
		trx.Abort()
		return nil, fault.NotYourOrder
	}
	if !order.Active {
		trx.Abort()
		return nil, fault.OrderNotActive
	}

	returned := order.AmountRemaining

	err = ledger.MoveAttributed(trx, EscrowWallet, order.Seller, returned)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	order.AmountRemaining = new(big.Int)
	order.Active = false
	trx.Put(storage.Pool.Orders, orderKey(orderId), packOrder(order))

	err = trx.Commit()
	if nil != err {
		return nil, err
	}

	globalData.log.Infof("order: %d cancelled by: %q returned: %s", orderId, caller, returned)
	messagebus.Send("order.cancelled", CancelledEvent{
		OrderId:  orderId,
		Seller:   order.Seller,
		Returned: returned,
	})

	return returned, nil
}
