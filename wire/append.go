// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// AppendUint - varint field (uint32, uint64, enum and non-negative int32)
func AppendUint(buffer []byte, number protowire.Number, value uint64) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)
	return protowire.AppendVarint(buffer, value)
}

// AppendInt32 - int32 or enum field, negative values use ten bytes
func AppendInt32(buffer []byte, number protowire.Number, value int32) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)
	return protowire.AppendVarint(buffer, uint64(int64(value)))
}

// AppendSint - zigzag field (sint32 and sint64)
func AppendSint(buffer []byte, number protowire.Number, value int64) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)
	return protowire.AppendVarint(buffer, protowire.EncodeZigZag(value))
}

// AppendBool - bool field
func AppendBool(buffer []byte, number protowire.Number, value bool) []byte {
	v := uint64(0)
	if value {
		v = 1
	}
	return AppendUint(buffer, number, v)
}

// AppendString - length delimited string field
func AppendString(buffer []byte, number protowire.Number, value string) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)
	return protowire.AppendString(buffer, value)
}

// AppendBytes - length delimited bytes field, also used for embedded records
func AppendBytes(buffer []byte, number protowire.Number, value []byte) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)
	return protowire.AppendBytes(buffer, value)
}
