// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// Transaction - atomic batch of pool operations
//
// obtained from NewDBTransaction which blocks until any concurrent
// transaction has committed or aborted; all staged changes become
// durable together on Commit and vanish together on Abort
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) begin() {
	t.access.Begin()
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	pool.put(key, value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	pool.put(key, buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	pool.remove(key)
}

func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}
