// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/gelephu/landd/chain"
	"github.com/gelephu/landd/counter"
	"github.com/gelephu/landd/mode"
	"github.com/gelephu/landd/rpc/fixtures"
	"github.com/gelephu/landd/rpc/node"
)

func TestInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_ = mode.Initialise(chain.Testing)
	defer mode.Finalise()
	mode.Set(mode.Normal)

	var connections counter.Counter
	connections.Increment()
	connections.Increment()

	service := node.New(
		logger.New(fixtures.LogCategory),
		time.Now().Add(-time.Minute),
		"1.0.0",
		&connections,
	)

	var reply node.InfoReply
	err := service.Info(&node.InfoArguments{}, &reply)
	assert.NoError(t, err, "info failed")

	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, "Normal", reply.Mode, "wrong mode")
	assert.Equal(t, "1.0.0", reply.Version, "wrong version")
	assert.Equal(t, uint64(2), reply.Connections, "wrong connection count")

	uptime, err := time.ParseDuration(reply.Uptime)
	assert.NoError(t, err, "unparseable uptime")
	assert.True(t, uptime >= time.Minute, "wrong uptime")
}
