// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database broken into a series of pools,
// each pool being distinguished by a single byte prefix on its keys
//
// the current pools are:
//
//	Plots       - registered land plot records keyed by plot id
//	Balances    - total token balance per wallet
//	HolderPlots - ordered list of attributed plot ids per wallet
//	Attribution - per wallet and plot attributed token amount
//	Trading     - per wallet token amount locked in open sell orders
//	Orders      - sell order records keyed by order number
//	Cash        - payment balance per wallet
//	Config      - administrator, conversion rate and order counter
//	TestData    - scratch area for tests
//
// all mutating access is through a Transaction: changes are staged in
// a batch with a read-your-writes cache overlay and only reach the
// database on Commit, so a failed operation leaves no partial state
package storage
