// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gelephu/landd/storage"
)

func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")

	trx.Put(p, []byte("alpha"), []byte("one"))
	trx.Put(p, []byte("beta"), []byte("two"))

	// the transaction must read its own staged writes
	assert.Equal(t, []byte("one"), trx.Get(p, []byte("alpha")), "read own write")

	err = trx.Commit()
	assert.NoError(t, err, "commit transaction")

	assert.Equal(t, []byte("one"), p.Get([]byte("alpha")), "committed value")
	assert.Equal(t, []byte("two"), p.Get([]byte("beta")), "committed value")
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")

	trx.Put(p, []byte("gamma"), []byte("three"))
	trx.Abort()

	assert.Nil(t, p.Get([]byte("gamma")), "aborted value must not persist")

	// pool must be usable again after the abort
	trx, err = storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction after abort")
	trx.Put(p, []byte("gamma"), []byte("three"))
	err = trx.Commit()
	assert.NoError(t, err, "commit transaction")

	assert.Equal(t, []byte("three"), p.Get([]byte("gamma")), "committed value")
}

func TestTransactionDeleteMasksCommittedValue(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")
	trx.Put(p, []byte("delta"), []byte("four"))
	err = trx.Commit()
	assert.NoError(t, err, "commit transaction")

	// a staged delete must hide the committed record from reads made
	// inside the same transaction
	trx, err = storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")
	trx.Delete(p, []byte("delta"))

	assert.Nil(t, trx.Get(p, []byte("delta")), "deleted key read as missing")
	assert.False(t, trx.Has(p, []byte("delta")), "deleted key must not exist")

	err = trx.Commit()
	assert.NoError(t, err, "commit transaction")

	assert.Nil(t, p.Get([]byte("delta")), "deleted key after commit")
}

func TestTransactionOverwriteInTransaction(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.NoError(t, err, "begin transaction")

	trx.Put(p, []byte("epsilon"), []byte("five"))
	trx.Put(p, []byte("epsilon"), []byte("five(NEW)"))
	assert.Equal(t, []byte("five(NEW)"), trx.Get(p, []byte("epsilon")), "latest staged value wins")

	err = trx.Commit()
	assert.NoError(t, err, "commit transaction")

	assert.Equal(t, []byte("five(NEW)"), p.Get([]byte("epsilon")), "committed value")
}
