// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for the rpc package tests
package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

// LogCategory - logger name used by the rpc tests
const LogCategory = "testing"

const testingDirName = "testing"

var (
	certificatePEM string
	keyPEM         string
)

// SetupTestLogger - create a logger in a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - remove logger scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// Certificate - PEM encoded self-signed certificate for TLS tests
func Certificate() string {
	generate()
	return certificatePEM
}

// Key - PEM encoded private key matching Certificate
func Key() string {
	generate()
	return keyPEM
}

func generate() {
	if "" != certificatePEM {
		return
	}
	validUntil := time.Now().Add(time.Hour)
	cert, key, err := certgen.NewTLSCertPair("rpc testing", validUntil, true, nil)
	if nil != err {
		panic(err)
	}
	certificatePEM = string(cert)
	keyPEM = string(key)
}
