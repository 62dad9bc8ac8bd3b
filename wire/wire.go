// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - protobuf wire format field access
//
// All records exchanged with the validator and stored in global
// state use the protobuf encoding.  This package walks the fields of
// an encoded record and provides append helpers so each record type
// can encode and decode itself explicitly.
package wire

import (
	"math"

	"github.com/bitmark-inc/archerd/fault"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field - one decoded field of a record
type Field struct {
	Number protowire.Number
	Type   protowire.Type
	Varint uint64 // varint, fixed32 and fixed64 values
	Bytes  []byte // length delimited values
}

// Walk - call fn for each field in order of occurrence
//
// groups are skipped, any other malformation is a DecodeError
func Walk(buffer []byte, fn func(f *Field) error) error {
	for len(buffer) > 0 {
		number, typ, n := protowire.ConsumeTag(buffer)
		if n < 0 {
			return fault.Decodef("field tag: %s", protowire.ParseError(n))
		}
		buffer = buffer[n:]

		f := Field{
			Number: number,
			Type:   typ,
		}
		switch typ {
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(buffer)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(buffer)
			f.Varint = uint64(v)
		case protowire.Fixed64Type:
			f.Varint, n = protowire.ConsumeFixed64(buffer)
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(buffer)
		case protowire.StartGroupType:
			n = protowire.ConsumeFieldValue(number, typ, buffer)
			if n < 0 {
				return fault.Decodef("field %d: %s", number, protowire.ParseError(n))
			}
			buffer = buffer[n:]
			continue
		default:
			return fault.ErrUnsupportedWireType
		}
		if n < 0 {
			return fault.Decodef("field %d: %s", number, protowire.ParseError(n))
		}
		buffer = buffer[n:]

		if err := fn(&f); nil != err {
			return err
		}
	}
	return nil
}

// Uint32 - varint field as a proto uint32
func (f *Field) Uint32() (uint32, error) {
	if protowire.VarintType != f.Type {
		return 0, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return uint32(f.Varint), nil
}

// Uint64 - varint field as a proto uint64
func (f *Field) Uint64() (uint64, error) {
	if protowire.VarintType != f.Type {
		return 0, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return f.Varint, nil
}

// Int32 - varint field as a proto int32 or enum
func (f *Field) Int32() (int32, error) {
	if protowire.VarintType != f.Type {
		return 0, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return int32(f.Varint), nil
}

// Sint32 - zigzag encoded proto sint32
func (f *Field) Sint32() (int32, error) {
	if protowire.VarintType != f.Type {
		return 0, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return int32(protowire.DecodeZigZag(f.Varint & math.MaxUint32)), nil
}

// Sint64 - zigzag encoded proto sint64
func (f *Field) Sint64() (int64, error) {
	if protowire.VarintType != f.Type {
		return 0, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return protowire.DecodeZigZag(f.Varint), nil
}

// Bool - varint field as a proto bool
func (f *Field) Bool() (bool, error) {
	if protowire.VarintType != f.Type {
		return false, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return 0 != f.Varint, nil
}

// String - length delimited field as a string
func (f *Field) String() (string, error) {
	if protowire.BytesType != f.Type {
		return "", fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return string(f.Bytes), nil
}

// Data - length delimited field as bytes, the result is a copy
func (f *Field) Data() ([]byte, error) {
	if protowire.BytesType != f.Type {
		return nil, fault.Decodef("field %d: %s", f.Number, fault.ErrWrongWireType)
	}
	return append([]byte{}, f.Bytes...), nil
}
