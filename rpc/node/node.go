// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/counter"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	counter *counter.Counter
}

func New(log *logger.L, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain       string `json:"chain"`
	Mode        string `json:"mode"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections uint64 `json:"connections"`
}

// Info - server status
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.Connections = node.counter.Uint64()

	return nil
}
