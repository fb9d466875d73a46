// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
//
// the available services are:
//
//   Plots  - plot registry operations and queries
//   Token  - transfers, administrative mint and burn, balances
//   Market - sell orders, fills, cancellations and the cash accounts
//   Owners - aggregated per-wallet position reports
//   Node   - server status
package rpc
