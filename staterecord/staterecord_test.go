// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/staterecord"
)

func TestAccountContainer(t *testing.T) {
	c := &staterecord.AccountContainer{}
	c.Add(staterecord.Account{Name: "alice", Number: 1, Balance: 100})
	c.Add(staterecord.Account{Name: "alice", Number: 2, Balance: -5})

	d, err := staterecord.UnpackAccounts(c.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, c.Entries, d.Entries, "entries differ")
	assert.Equal(t, 1, d.Find("alice", 2), "wrong index")
	assert.Equal(t, -1, d.Find("alice", 3), "unexpected entry")
	assert.Equal(t, -1, d.Find("bob", 1), "unexpected entry")
}

func TestEmptyContainers(t *testing.T) {
	a, err := staterecord.UnpackAccounts(nil)
	assert.Nil(t, err, "account unpack error")
	assert.Equal(t, 0, len(a.Entries), "accounts not empty")

	m, err := staterecord.UnpackMerchants([]byte{})
	assert.Nil(t, err, "merchant unpack error")
	assert.Equal(t, 0, len(m.Entries), "merchants not empty")
}

func TestMerchantContainer(t *testing.T) {
	c := &staterecord.MerchantContainer{}
	c.Add(staterecord.Merchant{PublicKey: "02ab", Name: "shop", Timestamp: 1600000000})

	d, err := staterecord.UnpackMerchants(c.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, c.Entries, d.Entries, "entries differ")
	assert.Equal(t, 0, d.Find("02ab"), "wrong index")
	assert.Equal(t, -1, d.Find("03cd"), "unexpected entry")
}

func TestPackIsDeterministic(t *testing.T) {
	c := &staterecord.AccountContainer{
		Entries: []staterecord.Account{
			{Name: "bob", Number: 9, Balance: 1},
			{Name: "alice", Number: 1, Balance: 2},
		},
	}
	assert.Equal(t, c.Pack(), c.Pack(), "pack not deterministic")
}

func TestCorruptContainer(t *testing.T) {
	_, err := staterecord.UnpackAccounts([]byte{0x0a, 0x05, 0x01})
	assert.True(t, fault.IsErrDecode(err), "expected decode error, got: %v", err)
}
