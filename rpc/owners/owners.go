// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package owners

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/gelephu/landd/holding"
	"github.com/gelephu/landd/rpc/ratelimit"
)

const (
	rateLimitOwners = 200
	rateBurstOwners = 100
)

// Owners - type for RPC
type Owners struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

func New(log *logger.L) *Owners {
	return &Owners{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwners, rateBurstOwners),
	}
}

// InfoArguments - arguments for a position report
type InfoArguments struct {
	Wallet string `json:"wallet"`
}

// InfoReply - a wallet's full position
type InfoReply struct {
	Info holding.Info `json:"info"`
}

// Info - everything known about one wallet
func (o *Owners) Info(arguments *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(o.Limiter); nil != err {
		return err
	}

	log := o.Log
	log.Infof("Owners.Info: %+v", arguments)

	info, err := holding.GetInfo(arguments.Wallet)
	if nil != err {
		return err
	}

	reply.Info = *info

	return nil
}
