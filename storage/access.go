// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - staged access to the underlying database
//
// Put and Delete accumulate in a batch; Get and Has consult the cache
// overlay before the database so that an open transaction reads its
// own staged changes
type Access interface {
	Begin()
	Commit() error
	Abort()
	Put([]byte, []byte)
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
}

type accessData struct {
	sync.Mutex
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &accessData{
		db:    db,
		batch: batch,
		cache: cache,
	}
}

// Begin - blocks until any other transaction has finished
//
// this serialises all writers: at most one transaction is staged at
// any time and the batch and cache are exclusively its own
func (d *accessData) Begin() {
	d.Lock()
}

func (d *accessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *accessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), []byte{})
	d.batch.Delete(key)
}

// Commit - write the staged batch in one atomic database write
func (d *accessData) Commit() error {
	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.cache.Clear()
	d.Unlock()
	return err
}

// Abort - discard all staged changes
func (d *accessData) Abort() {
	d.batch.Reset()
	d.cache.Clear()
	d.Unlock()
}

func (d *accessData) Get(key []byte) ([]byte, error) {
	if val, op, found := d.cache.Get(string(key)); found {
		if dbDelete == op {
			return nil, leveldb.ErrNotFound
		}
		return val, nil
	}
	return d.db.Get(key, nil)
}

func (d *accessData) Has(key []byte) (bool, error) {
	if _, op, found := d.cache.Get(string(key)); found {
		return dbPut == op, nil
	}
	return d.db.Has(key, nil)
}

func (d *accessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
