// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/payment"
	"github.com/gelephu/landd/rpc/ratelimit"
	"github.com/gelephu/landd/trading"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100
)

// Market - type for RPC
type Market struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Market {
	return &Market{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitMarket, rateBurstMarket),
		IsNormalMode: isNormalMode,
	}
}

// Sell orders
// -----------

// CreateArguments - arguments for a new sell order
type CreateArguments struct {
	Seller string   `json:"seller"`
	Amount *big.Int `json:"amount"`
	Price  *big.Int `json:"price"`
}

// CreateReply - the order id assigned to a new sell order
type CreateReply struct {
	OrderId uint64 `json:"orderId,string"`
}

// Create - place tokens in escrow under a new sell order
func (m *Market) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Create: %+v", arguments)

	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	orderId, err := trading.CreateSellOrder(arguments.Seller, arguments.Amount, arguments.Price)
	if nil != err {
		return err
	}

	reply.OrderId = orderId

	return nil
}

// BuyArguments - arguments for buying from an order
type BuyArguments struct {
	Buyer   string   `json:"buyer"`
	OrderId uint64   `json:"orderId,string"`
	Amount  *big.Int `json:"amount"`
	Payment *big.Int `json:"payment"`
}

// BuyReply - result of a fill
type BuyReply struct {
	OrderId uint64   `json:"orderId,string"`
	Amount  *big.Int `json:"amount"`
	Cost    *big.Int `json:"cost"`
	Refund  *big.Int `json:"refund"`
}

// Buy - take tokens from an active order for cash
func (m *Market) Buy(arguments *BuyArguments, reply *BuyReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Buy: %+v", arguments)

	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	fill, err := trading.BuyFromOrder(arguments.Buyer, arguments.OrderId, arguments.Amount, arguments.Payment)
	if nil != err {
		return err
	}

	reply.OrderId = fill.OrderId
	reply.Amount = fill.Amount
	reply.Cost = fill.Cost
	reply.Refund = fill.Refund

	return nil
}

// CancelArguments - arguments for cancelling an order
type CancelArguments struct {
	Caller  string `json:"caller"`
	OrderId uint64 `json:"orderId,string"`
}

// CancelReply - tokens returned from escrow
type CancelReply struct {
	OrderId  uint64   `json:"orderId,string"`
	Returned *big.Int `json:"returned"`
}

// Cancel - return an order's unsold tokens to the seller
func (m *Market) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Cancel: %+v", arguments)

	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	returned, err := trading.CancelSellOrder(arguments.Caller, arguments.OrderId)
	if nil != err {
		return err
	}

	reply.OrderId = arguments.OrderId
	reply.Returned = returned

	return nil
}

// OrderArguments - arguments to fetch one order
type OrderArguments struct {
	OrderId uint64 `json:"orderId,string"`
}

// OrderReply - one order record
type OrderReply struct {
	Order trading.Order `json:"order"`
}

// Order - fetch an order by its id
func (m *Market) Order(arguments *OrderArguments, reply *OrderReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Order: %+v", arguments)

	order, err := trading.GetOrder(arguments.OrderId)
	if nil != err {
		return err
	}

	reply.Order = *order

	return nil
}

// OrdersArguments - arguments for an order book page
type OrdersArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// OrdersReply - a page of the order book
type OrdersReply struct {
	Orders    []trading.Order `json:"orders"`
	NextStart uint64          `json:"nextStart,string"`
}

// limit for a single page
const maximumOrdersCount = 100

// Orders - list orders in id order, paged
func (m *Market) Orders(arguments *OrdersArguments, reply *OrdersReply) error {

	if err := ratelimit.LimitN(m.Limiter, arguments.Count, maximumOrdersCount); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Orders: %+v", arguments)

	orders, nextStart, err := trading.ListOrders(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Orders = orders
	reply.NextStart = nextStart

	return nil
}

// Cash accounts
// -------------

// CashArguments - arguments for deposit and withdraw
//
// the caller must be the administrator for deposit and withdraw; it is
// ignored by the balance query
type CashArguments struct {
	Caller string   `json:"caller"`
	Wallet string   `json:"wallet"`
	Amount *big.Int `json:"amount"`
}

// CashReply - cash balance after the operation
type CashReply struct {
	Balance *big.Int `json:"balance"`
}

// Deposit - administrator addition of cash to a wallet's account
func (m *Market) Deposit(arguments *CashArguments, reply *CashReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Deposit: %+v", arguments)

	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := payment.Deposit(arguments.Caller, arguments.Wallet, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = payment.Balance(arguments.Wallet)

	return nil
}

// Withdraw - administrator removal of cash from a wallet's account
func (m *Market) Withdraw(arguments *CashArguments, reply *CashReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Withdraw: %+v", arguments)

	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	err := payment.Withdraw(arguments.Caller, arguments.Wallet, arguments.Amount)
	if nil != err {
		return err
	}

	reply.Balance = payment.Balance(arguments.Wallet)

	return nil
}

// Cash - a wallet's current cash balance
func (m *Market) Cash(arguments *CashArguments, reply *CashReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	reply.Balance = payment.Balance(arguments.Wallet)

	return nil
}
