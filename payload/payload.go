// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payload - transaction payload encoding
//
// fields of the proto2 record:
//
//	1 action      enum    required
//	2 name        string  required
//	3 number      uint32
//	5 amount      sint32
//	6 new_number  uint32
//	7 timestamp   sint64
//	8 public_key  string
package payload

import (
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/wire"
)

// Action - the closed set of ledger operations
type Action int32

// actions, values are fixed by the wire format
const (
	Deposit      Action = 0
	Withdraw     Action = 1
	UpdateNumber Action = 2
	AddAccount   Action = 3
	AddMerchant  Action = 4
)

const (
	fieldAction    = 1
	fieldName      = 2
	fieldNumber    = 3
	fieldAmount    = 5
	fieldNewNumber = 6
	fieldTimestamp = 7
	fieldPublicKey = 8
)

// Payload - a decoded transaction payload
//
// optional fields are nil when absent
type Payload struct {
	Action    Action
	Name      string
	Number    *uint32
	Amount    *int32
	NewNumber *uint32
	Timestamp *int64
	PublicKey *string
}

// String - action name
func (a Action) String() string {
	switch a {
	case Deposit:
		return "Deposit"
	case Withdraw:
		return "Withdraw"
	case UpdateNumber:
		return "UpdateNumber"
	case AddAccount:
		return "AddAccount"
	case AddMerchant:
		return "AddMerchant"
	default:
		return "Unknown"
	}
}

// IsValid - action is one of the defined values
func (a Action) IsValid() bool {
	return a >= Deposit && a <= AddMerchant
}

// CarriesNumber - actions that address a specific account number
func (a Action) CarriesNumber() bool {
	switch a {
	case Deposit, Withdraw, UpdateNumber, AddAccount:
		return true
	default:
		return false
	}
}

// Decode - parse payload bytes
//
// repeated scalar fields keep the last value and unknown fields are
// ignored; a missing required field or an undefined action is a
// DecodeError
func Decode(buffer []byte) (*Payload, error) {
	p := &Payload{}
	haveAction := false
	haveName := false

	err := wire.Walk(buffer, func(f *wire.Field) error {
		switch f.Number {
		case fieldAction:
			v, err := f.Int32()
			if nil != err {
				return err
			}
			action := Action(v)
			if !action.IsValid() {
				return fault.ErrInvalidAction
			}
			p.Action = action
			haveAction = true

		case fieldName:
			s, err := f.String()
			if nil != err {
				return err
			}
			p.Name = s
			haveName = true

		case fieldNumber:
			v, err := f.Uint32()
			if nil != err {
				return err
			}
			p.Number = &v

		case fieldAmount:
			v, err := f.Sint32()
			if nil != err {
				return err
			}
			p.Amount = &v

		case fieldNewNumber:
			v, err := f.Uint32()
			if nil != err {
				return err
			}
			p.NewNumber = &v

		case fieldTimestamp:
			v, err := f.Sint64()
			if nil != err {
				return err
			}
			p.Timestamp = &v

		case fieldPublicKey:
			s, err := f.String()
			if nil != err {
				return err
			}
			p.PublicKey = &s
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	if !haveAction {
		return nil, fault.ErrMissingAction
	}
	if !haveName {
		return nil, fault.ErrMissingRequiredName
	}
	return p, nil
}

// Validate - check the fields each action requires
func (p *Payload) Validate() error {
	if "" == p.Name {
		return fault.ErrMissingName
	}

	switch p.Action {
	case Deposit, Withdraw:
		if nil == p.Amount {
			return fault.ErrMissingAmount
		}
	case UpdateNumber:
		if nil == p.NewNumber {
			return fault.ErrMissingNewNumber
		}
	case AddAccount:
	case AddMerchant:
		if nil == p.Timestamp {
			return fault.ErrMissingTimestamp
		}
	default:
		return fault.ErrUnsupportedAction
	}
	return nil
}

// Pack - canonical encoding in field number order
func (p *Payload) Pack() []byte {
	buffer := wire.AppendUint(nil, fieldAction, uint64(p.Action))
	buffer = wire.AppendString(buffer, fieldName, p.Name)
	if nil != p.Number {
		buffer = wire.AppendUint(buffer, fieldNumber, uint64(*p.Number))
	}
	if nil != p.Amount {
		buffer = wire.AppendSint(buffer, fieldAmount, int64(*p.Amount))
	}
	if nil != p.NewNumber {
		buffer = wire.AppendUint(buffer, fieldNewNumber, uint64(*p.NewNumber))
	}
	if nil != p.Timestamp {
		buffer = wire.AppendSint(buffer, fieldTimestamp, *p.Timestamp)
	}
	if nil != p.PublicKey {
		buffer = wire.AppendString(buffer, fieldPublicKey, *p.PublicKey)
	}
	return buffer
}

// NumberValue - account number, zero when absent
func (p *Payload) NumberValue() uint32 {
	if nil == p.Number {
		return 0
	}
	return *p.Number
}

// AmountValue - amount, zero when absent
func (p *Payload) AmountValue() int32 {
	if nil == p.Amount {
		return 0
	}
	return *p.Amount
}

// NewNumberValue - replacement account number, zero when absent
func (p *Payload) NewNumberValue() uint32 {
	if nil == p.NewNumber {
		return 0
	}
	return *p.NewNumber
}

// TimestampValue - merchant creation time, zero when absent
func (p *Payload) TimestampValue() int64 {
	if nil == p.Timestamp {
		return 0
	}
	return *p.Timestamp
}
