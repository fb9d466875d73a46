// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/big"
)

// Packed - a composite binary record under construction
//
// fields are appended as varint values or varint-length-prefixed
// byte strings, in a fixed order that the reader must mirror
type Packed []byte

// AppendUint64 - append a varint value
func (p Packed) AppendUint64(value uint64) Packed {
	return append(p, ToVarint64(value)...)
}

// AppendString - append a varint-length-prefixed string
func (p Packed) AppendString(s string) Packed {
	p = p.AppendUint64(uint64(len(s)))
	return append(p, s...)
}

// AppendBigInt - append a varint-length-prefixed big endian number
//
// nil is stored the same as zero: an empty byte string
func (p Packed) AppendBigInt(value *big.Int) Packed {
	buffer := []byte(nil)
	if nil != value {
		buffer = value.Bytes()
	}
	p = p.AppendUint64(uint64(len(buffer)))
	return append(p, buffer...)
}

// Unpacker - sequential reader for a Packed record
//
// the first decode failure latches: all later reads return zero
// values and Valid reports false
type Unpacker struct {
	buffer []byte
	valid  bool
}

// NewUnpacker - start reading a packed record
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
		valid:  true,
	}
}

// Uint64 - read one varint value
func (u *Unpacker) Uint64() uint64 {
	if !u.valid {
		return 0
	}
	value, n := FromVarint64(u.buffer)
	if 0 == n {
		u.valid = false
		return 0
	}
	u.buffer = u.buffer[n:]
	return value
}

// bytes - read one varint-length-prefixed byte string
func (u *Unpacker) bytes() []byte {
	length := u.Uint64()
	if !u.valid {
		return nil
	}
	if uint64(len(u.buffer)) < length {
		u.valid = false
		return nil
	}
	data := u.buffer[:length]
	u.buffer = u.buffer[length:]
	return data
}

// String - read one varint-length-prefixed string
func (u *Unpacker) String() string {
	return string(u.bytes())
}

// BigInt - read one varint-length-prefixed big endian number
//
// an empty byte string reads as zero
func (u *Unpacker) BigInt() *big.Int {
	return new(big.Int).SetBytes(u.bytes())
}

// Done - true only if the whole record decoded and was fully consumed
func (u *Unpacker) Done() bool {
	return u.valid && 0 == len(u.buffer)
}

// Valid - true while no decode error has occurred
func (u *Unpacker) Valid() bool {
	return u.valid
}

// More - true while valid and unread bytes remain
func (u *Unpacker) More() bool {
	return u.valid && 0 < len(u.buffer)
}
