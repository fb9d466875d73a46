// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/payment"
	"github.com/gelephu/landd/storage"
	"github.com/gelephu/landd/trading"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"

	adminWallet  = "wallet-admin"
	sellerWallet = "wallet-seller"
	buyerWallet  = "wallet-buyer"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	os.Mkdir(testingDirName, 0o700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	_ = authority.Initialise(adminWallet)
	_ = ledger.Initialise()
	_ = payment.Initialise()
	_ = trading.Initialise()
	rc := m.Run()
	trading.Finalise()
	payment.Finalise()
	ledger.Finalise()
	authority.Finalise()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func setup(t *testing.T) {
	os.RemoveAll(databaseFileName + ".leveldb")
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + ".leveldb")
}

// allocate tokens attributed to a plot, committed
func mint(t *testing.T, wallet string, plotId string, amount int64) {
	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")
	ledger.MintAttributed(trx, wallet, plotId, big.NewInt(amount))
	assert.NoError(t, trx.Commit(), "commit mint")
}

// a price of n cash units per whole token
func price(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), trading.DecimalsFactor)
}

func TestCreateSellOrder(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(4), price(2))
	assert.NoError(t, err, "create order")
	assert.Equal(t, uint64(1), orderId, "first order id")

	// tokens and attribution moved to escrow
	assert.Equal(t, big.NewInt(6), ledger.Balance(sellerWallet), "seller balance")
	assert.Equal(t, big.NewInt(4), ledger.Balance(trading.EscrowWallet), "escrow balance")
	assert.Equal(t, big.NewInt(4), ledger.Attributed(trading.EscrowWallet, "plot-a"), "escrow attribution")

	order, err := trading.GetOrder(orderId)
	assert.NoError(t, err, "get order")
	assert.Equal(t, sellerWallet, order.Seller, "seller")
	assert.Equal(t, big.NewInt(4), order.AmountTotal, "total")
	assert.Equal(t, big.NewInt(4), order.AmountRemaining, "remaining")
	assert.True(t, order.Active, "active")

	// ids are sequential
	orderId, err = trading.CreateSellOrder(sellerWallet, big.NewInt(1), price(2))
	assert.NoError(t, err, "create second order")
	assert.Equal(t, uint64(2), orderId, "second order id")
}

func TestCreateSellOrderRejections(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)

	_, err := trading.CreateSellOrder("", big.NewInt(1), price(1))
	assert.Equal(t, fault.InvalidWallet, err, "empty seller")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(0), price(1))
	assert.Equal(t, fault.ZeroAmount, err, "zero amount")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(-4), price(1))
	assert.Equal(t, fault.ZeroAmount, err, "negative amount")

	_, err = trading.CreateSellOrder(sellerWallet, nil, price(1))
	assert.Equal(t, fault.ZeroAmount, err, "nil amount")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(1), big.NewInt(0))
	assert.Equal(t, fault.ZeroPrice, err, "zero price")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(1), big.NewInt(-1))
	assert.Equal(t, fault.ZeroPrice, err, "negative price")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(1), nil)
	assert.Equal(t, fault.ZeroPrice, err, "nil price")

	_, err = trading.CreateSellOrder(sellerWallet, big.NewInt(11), price(1))
	assert.Equal(t, fault.InsufficientFunds, err, "more than balance")

	// nothing escrowed by the rejected attempts
	assert.Equal(t, big.NewInt(10), ledger.Balance(sellerWallet), "seller balance")
	assert.Equal(t, big.NewInt(0), ledger.Balance(trading.EscrowWallet), "escrow balance")
}

// cancelling restores seller state exactly as before the order
func TestCreateCancelRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 5)
	mint(t, sellerWallet, "plot-b", 7)

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(8), price(1))
	assert.NoError(t, err, "create order")

	returned, err := trading.CancelSellOrder(sellerWallet, orderId)
	assert.NoError(t, err, "cancel order")
	assert.Equal(t, big.NewInt(8), returned, "returned amount")

	assert.Equal(t, big.NewInt(12), ledger.Balance(sellerWallet), "seller balance")
	assert.Equal(t, big.NewInt(5), ledger.Attributed(sellerWallet, "plot-a"), "plot-a attribution")
	assert.Equal(t, big.NewInt(7), ledger.Attributed(sellerWallet, "plot-b"), "plot-b attribution")
	assert.Equal(t, big.NewInt(0), ledger.Balance(trading.EscrowWallet), "escrow emptied")

	order, err := trading.GetOrder(orderId)
	assert.NoError(t, err, "get order")
	assert.False(t, order.Active, "inactive")
	assert.Equal(t, big.NewInt(0), order.AmountRemaining, "remaining zeroed")
}

func TestPartialFill(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(100)), "deposit")

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(10), price(1))
	assert.NoError(t, err, "create order")

	fill, err := trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(3), big.NewInt(3))
	assert.NoError(t, err, "first fill")
	assert.Equal(t, big.NewInt(3), fill.Cost, "first cost")

	order, err := trading.GetOrder(orderId)
	assert.NoError(t, err, "get order")
	assert.Equal(t, big.NewInt(7), order.AmountRemaining, "remaining after first fill")
	assert.True(t, order.Active, "still active")

	fill, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(7), big.NewInt(7))
	assert.NoError(t, err, "second fill")
	assert.Equal(t, big.NewInt(7), fill.Cost, "second cost")

	order, err = trading.GetOrder(orderId)
	assert.NoError(t, err, "get order")
	assert.Equal(t, big.NewInt(0), order.AmountRemaining, "fully filled")
	assert.False(t, order.Active, "inactive when empty")

	// tokens, attribution and cash all settled
	assert.Equal(t, big.NewInt(10), ledger.Balance(buyerWallet), "buyer tokens")
	assert.Equal(t, big.NewInt(10), ledger.Attributed(buyerWallet, "plot-a"), "buyer attribution")
	assert.Equal(t, big.NewInt(0), ledger.Balance(trading.EscrowWallet), "escrow emptied")
	assert.Equal(t, big.NewInt(90), payment.Balance(buyerWallet), "buyer cash")
	assert.Equal(t, big.NewInt(10), payment.Balance(sellerWallet), "seller cash")

	// cumulative totals
	sellerCounters := trading.GetCounters(sellerWallet)
	assert.Equal(t, big.NewInt(10), sellerCounters.Proceeds, "seller proceeds")
	assert.Equal(t, big.NewInt(10), sellerCounters.Sold, "seller sold")
	buyerCounters := trading.GetCounters(buyerWallet)
	assert.Equal(t, big.NewInt(10), buyerCounters.Bought, "buyer bought")
}

// only the cost leaves the buyer, any overpayment stays untouched
func TestOverpaymentRefund(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(100)), "deposit")

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(10), price(2))
	assert.NoError(t, err, "create order")

	// cost is 3 × 2 = 6, 5 over
	fill, err := trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(3), big.NewInt(11))
	assert.NoError(t, err, "fill")
	assert.Equal(t, big.NewInt(6), fill.Cost, "cost")
	assert.Equal(t, big.NewInt(5), fill.Refund, "refund")

	assert.Equal(t, big.NewInt(94), payment.Balance(buyerWallet), "buyer cash down by cost only")
	assert.Equal(t, big.NewInt(6), payment.Balance(sellerWallet), "seller cash")
}

// cost truncates: 3 tokens at 0.5 cash each is 1, not 1.5
func TestCostTruncation(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(100)), "deposit")

	halfPrice := new(big.Int).Div(trading.DecimalsFactor, big.NewInt(2))
	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(10), halfPrice)
	assert.NoError(t, err, "create order")

	fill, err := trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(3), big.NewInt(2))
	assert.NoError(t, err, "fill")
	assert.Equal(t, big.NewInt(1), fill.Cost, "truncated cost")
}

func TestBuyRejections(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(5)), "deposit")

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(10), price(1))
	assert.NoError(t, err, "create order")

	_, err = trading.BuyFromOrder(buyerWallet, 99, big.NewInt(1), big.NewInt(1))
	assert.Equal(t, fault.OrderNotFound, err, "missing order")

	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(0), big.NewInt(1))
	assert.Equal(t, fault.ZeroAmount, err, "zero amount")

	// a negative amount must not inflate the order remainder
	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(-3), big.NewInt(1))
	assert.Equal(t, fault.ZeroAmount, err, "negative amount")

	_, err = trading.BuyFromOrder(buyerWallet, orderId, nil, big.NewInt(1))
	assert.Equal(t, fault.ZeroAmount, err, "nil amount")

	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(3), nil)
	assert.Equal(t, fault.InsufficientPayment, err, "nil payment")

	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(11), big.NewInt(11))
	assert.Equal(t, fault.NotEnoughTokensInOrder, err, "overfill")

	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(3), big.NewInt(2))
	assert.Equal(t, fault.InsufficientPayment, err, "payment below cost")

	// payment covers cost but the buyer has no such cash
	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(6), big.NewInt(6))
	assert.Equal(t, fault.InsufficientFunds, err, "not enough cash")

	// every rejection left the order untouched
	order, err := trading.GetOrder(orderId)
	assert.NoError(t, err, "get order")
	assert.Equal(t, big.NewInt(10), order.AmountRemaining, "remaining unchanged")
	assert.True(t, order.Active, "still active")
	assert.Equal(t, big.NewInt(5), payment.Balance(buyerWallet), "buyer cash unchanged")
	assert.Equal(t, big.NewInt(10), ledger.Balance(trading.EscrowWallet), "escrow unchanged")

	// cancelled orders reject buys
	_, err = trading.CancelSellOrder(sellerWallet, orderId)
	assert.NoError(t, err, "cancel")
	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(1), big.NewInt(1))
	assert.Equal(t, fault.OrderNotActive, err, "cancelled order")
}

func TestCancelRejections(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 10)

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(4), price(1))
	assert.NoError(t, err, "create order")

	_, err = trading.CancelSellOrder(sellerWallet, 99)
	assert.Equal(t, fault.OrderNotFound, err, "missing order")

	_, err = trading.CancelSellOrder(buyerWallet, orderId)
	assert.Equal(t, fault.NotYourOrder, err, "not the seller")

	_, err = trading.CancelSellOrder(sellerWallet, orderId)
	assert.NoError(t, err, "cancel")

	_, err = trading.CancelSellOrder(sellerWallet, orderId)
	assert.Equal(t, fault.OrderNotActive, err, "already cancelled")
}

// attribution follows partial fills through escrow
func TestAttributionThroughEscrow(t *testing.T) {
	setup(t)
	defer teardown(t)

	mint(t, sellerWallet, "plot-a", 5)
	mint(t, sellerWallet, "plot-b", 7)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(100)), "deposit")

	orderId, err := trading.CreateSellOrder(sellerWallet, big.NewInt(8), price(1))
	assert.NoError(t, err, "create order")

	// escrow took 7 of plot-b then 1 of plot-a
	assert.Equal(t, big.NewInt(7), ledger.Attributed(trading.EscrowWallet, "plot-b"), "escrow plot-b")
	assert.Equal(t, big.NewInt(1), ledger.Attributed(trading.EscrowWallet, "plot-a"), "escrow plot-a")

	// escrow list is [plot-b plot-a] so a buy of 2 takes 1 of plot-a
	// then 1 of plot-b
	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(2), big.NewInt(2))
	assert.NoError(t, err, "fill")

	assert.Equal(t, big.NewInt(1), ledger.Attributed(buyerWallet, "plot-a"), "buyer plot-a")
	assert.Equal(t, big.NewInt(1), ledger.Attributed(buyerWallet, "plot-b"), "buyer plot-b")
	assert.Equal(t, big.NewInt(6), ledger.Attributed(trading.EscrowWallet, "plot-b"), "escrow plot-b after")
	assert.Equal(t, big.NewInt(0), ledger.Attributed(trading.EscrowWallet, "plot-a"), "escrow plot-a after")
}
