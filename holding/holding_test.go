// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package holding_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/gelephu/landd/authority"
	"github.com/gelephu/landd/holding"
	"github.com/gelephu/landd/ledger"
	"github.com/gelephu/landd/payment"
	"github.com/gelephu/landd/plot"
	"github.com/gelephu/landd/storage"
	"github.com/gelephu/landd/trading"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"

	adminWallet  = "wallet-admin"
	holderWallet = "wallet-holder"
	buyerWallet  = "wallet-buyer"
)

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
	_ = authority.Initialise(adminWallet)
	_ = ledger.Initialise()
	_ = plot.Initialise()
	_ = payment.Initialise()
	_ = trading.Initialise()
	rc := m.Run()
	trading.Finalise()
	payment.Finalise()
	plot.Finalise()
	ledger.Finalise()
	authority.Finalise()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func setup(t *testing.T) {
	os.RemoveAll(databaseFileName + ".leveldb")
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName + ".leveldb")
}

func register(t *testing.T, plotId string, wallet string, landValue uint64) {
	err := plot.Register(adminWallet, &plot.Plot{
		PlotId:      plotId,
		Dzongkhag:   "Thimphu",
		ThramNumber: "TH-" + plotId,
		OwnerName:   "Pema Wangmo",
		AreaSqFt:    1000,
		LandValue:   landValue,
		Wallet:      wallet,
	})
	assert.NoError(t, err, "register plot")
}

func TestGetInfo(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.NoError(t, plot.SetRate(adminWallet, big.NewInt(1)), "set rate")
	register(t, "plot-a", holderWallet, 5)
	register(t, "plot-b", holderWallet, 7)
	assert.NoError(t, payment.Deposit(adminWallet, buyerWallet, big.NewInt(100)), "deposit")

	orderId, err := trading.CreateSellOrder(holderWallet, big.NewInt(8), trading.DecimalsFactor)
	assert.NoError(t, err, "create order")
	_, err = trading.BuyFromOrder(buyerWallet, orderId, big.NewInt(8), big.NewInt(8))
	assert.NoError(t, err, "fill order")

	info, err := holding.GetInfo(holderWallet)
	assert.NoError(t, err, "holder info")
	assert.Equal(t, big.NewInt(4), info.Balance, "holder balance")
	assert.Equal(t, big.NewInt(8), info.Cash, "holder cash")
	assert.Equal(t, big.NewInt(8), info.Proceeds, "holder proceeds")
	assert.Equal(t, big.NewInt(8), info.Sold, "holder sold")
	assert.Equal(t, big.NewInt(0), info.Bought, "holder bought")
	assert.Equal(t, []string{"plot-a"}, info.PlotIds, "holder plots")
	assert.Len(t, info.Holdings, 1, "holder holdings")
	assert.Equal(t, "plot-a", info.Holdings[0].Plot.PlotId, "holding plot id")
	assert.Equal(t, big.NewInt(4), info.Holdings[0].Attributed, "holding attribution")

	info, err = holding.GetInfo(buyerWallet)
	assert.NoError(t, err, "buyer info")
	assert.Equal(t, big.NewInt(8), info.Balance, "buyer balance")
	assert.Equal(t, big.NewInt(92), info.Cash, "buyer cash")
	assert.Equal(t, big.NewInt(8), info.Bought, "buyer bought")
	assert.Equal(t, []string{"plot-b", "plot-a"}, info.PlotIds, "buyer plots in acquisition order")
	assert.Len(t, info.Holdings, 2, "buyer holdings")
	assert.Equal(t, big.NewInt(7), info.Holdings[0].Attributed, "plot-b attribution")
	assert.Equal(t, big.NewInt(1), info.Holdings[1].Attributed, "plot-a attribution")
}

func TestGetInfoEmptyWallet(t *testing.T) {
	setup(t)
	defer teardown(t)

	info, err := holding.GetInfo("wallet-nobody")
	assert.NoError(t, err, "empty wallet info")
	assert.Equal(t, big.NewInt(0), info.Balance, "balance")
	assert.Equal(t, big.NewInt(0), info.Cash, "cash")
	assert.Empty(t, info.PlotIds, "no plots")
	assert.Empty(t, info.Holdings, "no holdings")
}
