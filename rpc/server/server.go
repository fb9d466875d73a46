// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/counter"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/rpc/market"
	"github.com/gelephu/landd/rpc/node"
	"github.com/gelephu/landd/rpc/owners"
	"github.com/gelephu/landd/rpc/plots"
	"github.com/gelephu/landd/rpc/token"
)

// Create - register all services on a fresh RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(plots.New(log, mode.Is))
	_ = server.Register(token.New(log, mode.Is))
	_ = server.Register(market.New(log, mode.Is))
	_ = server.Register(owners.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
