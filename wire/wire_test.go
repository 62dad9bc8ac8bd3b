// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/wire"
)

func TestWalkFieldsInOrder(t *testing.T) {
	buffer := wire.AppendUint(nil, 1, 300)
	buffer = wire.AppendString(buffer, 2, "alice")
	buffer = wire.AppendSint(buffer, 5, -25)
	buffer = protowire.AppendTag(buffer, 9, protowire.Fixed64Type)
	buffer = protowire.AppendFixed64(buffer, 7)

	numbers := []protowire.Number{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		numbers = append(numbers, f.Number)
		switch f.Number {
		case 1:
			v, err := f.Uint32()
			assert.Nil(t, err, "uint32 error")
			assert.Equal(t, uint32(300), v, "wrong uint32")
		case 2:
			s, err := f.String()
			assert.Nil(t, err, "string error")
			assert.Equal(t, "alice", s, "wrong string")
		case 5:
			v, err := f.Sint32()
			assert.Nil(t, err, "sint32 error")
			assert.Equal(t, int32(-25), v, "wrong sint32")
		}
		return nil
	})
	assert.Nil(t, err, "walk error")
	assert.Equal(t, []protowire.Number{1, 2, 5, 9}, numbers, "wrong field order")
}

func TestWalkTruncated(t *testing.T) {
	buffer := wire.AppendString(nil, 2, "alice")
	err := wire.Walk(buffer[:len(buffer)-2], func(f *wire.Field) error {
		return nil
	})
	assert.True(t, fault.IsErrDecode(err), "expected decode error, got: %v", err)
}

func TestWrongWireType(t *testing.T) {
	buffer := wire.AppendString(nil, 3, "x")
	err := wire.Walk(buffer, func(f *wire.Field) error {
		_, err := f.Uint32()
		return err
	})
	assert.True(t, fault.IsErrDecode(err), "expected decode error, got: %v", err)
}

func TestNegativeInt32(t *testing.T) {
	buffer := wire.AppendInt32(nil, 1, -2)
	err := wire.Walk(buffer, func(f *wire.Field) error {
		v, err := f.Int32()
		assert.Equal(t, int32(-2), v, "wrong int32")
		return err
	})
	assert.Nil(t, err, "walk error")
}
