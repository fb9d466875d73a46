// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/fault"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	os.Mkdir(testingDirName, 0o700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func TestAdministratorCheck(t *testing.T) {
	err := authority.Initialise("wallet-admin")
	assert.NoError(t, err, "initialise")
	defer authority.Finalise()

	assert.True(t, authority.IsAdministrator("wallet-admin"), "configured identity")
	assert.False(t, authority.IsAdministrator("wallet-other"), "other identity")
	assert.False(t, authority.IsAdministrator(""), "empty identity")
	assert.Equal(t, "wallet-admin", authority.Administrator(), "administrator")
}

func TestInitialiseTwice(t *testing.T) {
	err := authority.Initialise("wallet-admin")
	assert.NoError(t, err, "initialise")
	defer authority.Finalise()

	err = authority.Initialise("wallet-admin")
	assert.Equal(t, fault.AlreadyInitialised, err, "double initialise")
}

func TestInitialiseEmpty(t *testing.T) {
	err := authority.Initialise("")
	assert.Equal(t, fault.InvalidWallet, err, "empty administrator")
}
