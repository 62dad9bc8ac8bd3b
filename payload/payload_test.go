// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/payload"
	"github.com/bitmark-inc/archerd/wire"
)

func TestDecodeDeposit(t *testing.T) {
	p := payload.NewDeposit("alice", 1, 100)

	d, err := payload.Decode(p.Pack())
	assert.Nil(t, err, "decode error")
	assert.Equal(t, payload.Deposit, d.Action, "wrong action")
	assert.Equal(t, "alice", d.Name, "wrong name")
	assert.Equal(t, uint32(1), d.NumberValue(), "wrong number")
	assert.Equal(t, int32(100), d.AmountValue(), "wrong amount")
	assert.Nil(t, d.NewNumber, "unexpected new number")
	assert.Nil(t, d.Timestamp, "unexpected timestamp")
	assert.Nil(t, d.Validate(), "validate error")
}

// explicit bytes for the zigzag fields so the encoding is pinned
func TestZigZagFields(t *testing.T) {
	buffer := []byte{
		0x08, 0x04, // action = AddMerchant
		0x12, 0x01, 'm', // name = "m"
		0x28, 0x03, // amount = -2
		0x38, 0x01, // timestamp = -1
	}
	d, err := payload.Decode(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, payload.AddMerchant, d.Action, "wrong action")
	assert.Equal(t, int32(-2), d.AmountValue(), "wrong amount")
	assert.Equal(t, int64(-1), d.TimestampValue(), "wrong timestamp")
}

func TestDecodeLastValueWins(t *testing.T) {
	buffer := payload.NewAddAccount("alice", 1).Pack()
	buffer = wire.AppendUint(buffer, 3, 7)

	d, err := payload.Decode(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, uint32(7), d.NumberValue(), "repeated field did not take last value")
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	buffer := payload.NewAddAccount("alice", 1).Pack()
	buffer = wire.AppendString(buffer, 99, "extra")
	buffer = protowire.AppendTag(buffer, 98, protowire.Fixed32Type)
	buffer = protowire.AppendFixed32(buffer, 1)

	d, err := payload.Decode(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, "alice", d.Name, "wrong name")
}

func TestDecodeFailures(t *testing.T) {
	valid := payload.NewDeposit("alice", 1, 5).Pack()

	items := []struct {
		name   string
		buffer []byte
	}{
		{"missing action", wire.AppendString(nil, 2, "alice")},
		{"missing name", wire.AppendUint(nil, 1, 0)},
		{"undefined action", wire.AppendString(wire.AppendUint(nil, 1, 9), 2, "alice")},
		{"truncated", valid[:len(valid)-1]},
		{"wrong wire type", wire.AppendString(wire.AppendString(nil, 1, "x"), 2, "alice")},
		{"garbage", []byte{0xff, 0xff, 0xff}},
	}
	for _, item := range items {
		_, err := payload.Decode(item.buffer)
		assert.True(t, fault.IsErrDecode(err), "%s: expected decode error, got: %v", item.name, err)
	}
}

func TestValidate(t *testing.T) {
	negative := int32(-1)
	items := []struct {
		name string
		p    *payload.Payload
		err  error
	}{
		{"deposit", payload.NewDeposit("a", 1, 1), nil},
		{"zero deposit", payload.NewDeposit("a", 1, 0), nil},
		{"withdraw", payload.NewWithdraw("a", 1, 1), nil},
		{"update", payload.NewUpdateNumber("a", 1, 2), nil},
		{"add account", payload.NewAddAccount("a", 1), nil},
		{"add merchant", payload.NewAddMerchant("m", 1600000000), nil},
		{"empty name", payload.NewAddAccount("", 1), fault.ErrMissingName},
		{"deposit no amount", &payload.Payload{Action: payload.Deposit, Name: "a"}, fault.ErrMissingAmount},
		{"withdraw no amount", &payload.Payload{Action: payload.Withdraw, Name: "a"}, fault.ErrMissingAmount},
		{"negative withdraw", &payload.Payload{Action: payload.Withdraw, Name: "a", Amount: &negative}, nil},
		{"negative deposit", &payload.Payload{Action: payload.Deposit, Name: "a", Amount: &negative}, nil},
		{"update no new number", &payload.Payload{Action: payload.UpdateNumber, Name: "a"}, fault.ErrMissingNewNumber},
		{"merchant no timestamp", &payload.Payload{Action: payload.AddMerchant, Name: "m"}, fault.ErrMissingTimestamp},
		{"bad action", &payload.Payload{Action: payload.Action(12), Name: "a"}, fault.ErrUnsupportedAction},
	}
	for _, item := range items {
		assert.Equal(t, item.err, item.p.Validate(), "%s: wrong validation result", item.name)
	}
}

func TestCarriesNumber(t *testing.T) {
	assert.True(t, payload.Deposit.CarriesNumber(), "deposit")
	assert.True(t, payload.Withdraw.CarriesNumber(), "withdraw")
	assert.True(t, payload.UpdateNumber.CarriesNumber(), "update")
	assert.True(t, payload.AddAccount.CarriesNumber(), "add account")
	assert.False(t, payload.AddMerchant.CarriesNumber(), "add merchant")
}
