// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AuthorizationError GenericError
	ExistsError        GenericError
	InsufficientError  GenericError
	InvalidError       GenericError
	NotFoundError      GenericError
	ProcessError       GenericError
	RecordError        GenericError
	StateError         GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised              = ProcessError("already initialised")
	CertificateFileExists           = ExistsError("certificate file already exists")
	CorruptedRecord                 = RecordError("corrupted record")
	InsufficientFunds               = InsufficientError("insufficient funds")
	InsufficientPayment             = InsufficientError("insufficient payment")
	InvalidAmount                   = InvalidError("amount must not be negative")
	InvalidChain                    = InvalidError("invalid chain")
	InvalidCount                    = InvalidError("invalid count")
	InvalidCursor                   = InvalidError("invalid cursor")
	InvalidWallet                   = InvalidError("invalid wallet")
	KeyFileExists                   = ExistsError("key file already exists")
	MissingParameters               = InvalidError("missing parameters")
	NotAuthorised                   = AuthorizationError("caller is not the administrator")
	NotAvailableDuringResynchronise = ProcessError("not available during resynchronise")
	NotEnoughTokensInOrder          = StateError("not enough tokens in order")
	NotInitialised                  = ProcessError("not initialised")
	NotYourOrder                    = AuthorizationError("not your order")
	OrderNotActive                  = StateError("order not active")
	OrderNotFound                   = NotFoundError("order not found")
	PlotAlreadyExists               = ExistsError("plot already exists")
	PlotNotFound                    = NotFoundError("plot not found")
	RateLimiting                    = ProcessError("rate limiting")
	RateNotSet                      = InvalidError("token rate not set")
	ZeroAmount                      = InvalidError("amount must be greater than zero")
	ZeroLandValue                   = InvalidError("land value must be greater than zero")
	ZeroPrice                       = InvalidError("price must be greater than zero")
	ZeroRate                        = InvalidError("rate must be greater than zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InsufficientError) Error() string  { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RecordError) Error() string        { return string(e) }
func (e StateError) Error() string         { return string(e) }

// IsErrAuthorization - determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInsufficient - determine the class of an error
func IsErrInsufficient(e error) bool { _, ok := e.(InsufficientError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }

// IsErrState - determine the class of an error
func IsErrState(e error) bool { _, ok := e.(StateError); return ok }
