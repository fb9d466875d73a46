// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trading - the escrowed sell order book
//
// a seller moves tokens into the escrow wallet when creating an
// order; buyers fill any active order by id, partially or in full,
// paying in cash at the order's fixed price.  Orders are never
// matched against each other and never deleted, a cancelled or fully
// filled order stays on record with active false.
package trading

import (
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/fault"
	"github.com/gelephu/landd/storage"
	"github.com/gelephu/landd/util"
)

// EscrowWallet - the distinguished identity holding escrowed tokens
//
// the asterisks keep it outside the space of caller-supplied wallets
const EscrowWallet = "*escrow*"

// DecimalsFactor - fixed point scale for token amounts and prices
//
// a price is cash units per whole token scaled by this factor; the
// cost of a fill is amount × price / DecimalsFactor, truncated
var DecimalsFactor = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Config pool key for the order id counter
var nextOrderIdKey = []byte("nextOrderId")

// Order - one sell order
type Order struct {
	OrderId         uint64   `json:"orderId"`
	Seller          string   `json:"seller"`
	AmountTotal     *big.Int `json:"amountTotal"`
	AmountRemaining *big.Int `json:"amountRemaining"`
	Price           *big.Int `json:"price"`
	Active          bool     `json:"active"`
}

// Counters - cumulative per-wallet trade totals, never reset
type Counters struct {
	Proceeds *big.Int `json:"proceeds"`
	Bought   *big.Int `json:"bought"`
	Sold     *big.Int `json:"sold"`
}

// globals
type tradingData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData tradingData

// Initialise - set up the order book subsystem
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("trading")
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

// orders are keyed by big endian id so the pool iterates in id order
func orderKey(orderId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, orderId)
	return key
}

func packOrder(order *Order) []byte {
	active := uint64(0)
	if order.Active {
		active = 1
	}
	return util.Packed{}.
		AppendString(order.Seller).
		AppendBigInt(order.AmountTotal).
		AppendBigInt(order.AmountRemaining).
		AppendBigInt(order.Price).
		AppendUint64(active)
}

func unpackOrder(orderId uint64, record []byte) (*Order, error) {
	u := util.NewUnpacker(record)
	order := &Order{
		OrderId:         orderId,
		Seller:          u.String(),
		AmountTotal:     u.BigInt(),
		AmountRemaining: u.BigInt(),
		Price:           u.BigInt(),
		Active:          1 == u.Uint64(),
	}
	if !u.Done() {
		return nil, fault.CorruptedRecord
	}
	return order, nil
}

func packCounters(c *Counters) []byte {
	return util.Packed{}.
		AppendBigInt(c.Proceeds).
		AppendBigInt(c.Bought).
		AppendBigInt(c.Sold)
}

func unpackCounters(record []byte) *Counters {
	if nil == record {
		return &Counters{
			Proceeds: new(big.Int),
			Bought:   new(big.Int),
			Sold:     new(big.Int),
		}
	}
	u := util.NewUnpacker(record)
	c := &Counters{
		Proceeds: u.BigInt(),
		Bought:   u.BigInt(),
		Sold:     u.BigInt(),
	}
	if !u.Done() {
		logger.Panicf("trading: corrupted counters record: %x", record)
	}
	return c
}

// GetOrder - fetch one order record
func GetOrder(orderId uint64) (*Order, error) {
	record := storage.Pool.Orders.Get(orderKey(orderId))
	if nil == record {
		return nil, fault.OrderNotFound
	}
	return unpackOrder(orderId, record)
}

// ListOrders - a page of order records starting from an id
//
// returns the records in id order and the id to pass as start for the
// following page; a zero next start means the book is exhausted
func ListOrders(start uint64, count int) ([]Order, uint64, error) {
	if count <= 0 {
		return nil, 0, fault.InvalidCount
	}

	cursor := storage.Pool.Orders.NewFetchCursor()
	if 0 != start {
		cursor.Seek(orderKey(start))
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, 0, err
	}

	orders := make([]Order, 0, len(elements))
	for _, e := range elements {
		if 8 != len(e.Key) {
			return nil, 0, fault.CorruptedRecord
		}
		order, err := unpackOrder(binary.BigEndian.Uint64(e.Key), e.Value)
		if nil != err {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}

	nextStart := uint64(0)
	if count == len(orders) {
		nextStart = orders[len(orders)-1].OrderId + 1
	}
	return orders, nextStart, nil
}

// GetCounters - fetch a wallet's cumulative trade totals
func GetCounters(wallet string) *Counters {
	return unpackCounters(storage.Pool.Trading.Get([]byte(wallet)))
}

// read counters inside a transaction
func getCounters(trx storage.Transaction, wallet string) *Counters {
	return unpackCounters(trx.Get(storage.Pool.Trading, []byte(wallet)))
}

func setCounters(trx storage.Transaction, wallet string, c *Counters) {
	trx.Put(storage.Pool.Trading, []byte(wallet), packCounters(c))
}
