// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"github.com/bitmark-inc/archerd/wire"
)

// Account - one account entry, keyed by name and number
type Account struct {
	Name    string
	Number  uint32
	Balance int32
}

// AccountContainer - all accounts stored at one address
type AccountContainer struct {
	Entries []Account
}

// UnpackAccounts - decode the state bytes at an account address
//
// empty data is an empty container
func UnpackAccounts(buffer []byte) (*AccountContainer, error) {
	c := &AccountContainer{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if fieldEntries != f.Number {
			return nil
		}
		data, err := f.Data()
		if nil != err {
			return err
		}
		a, err := unpackAccount(data)
		if nil != err {
			return err
		}
		c.Entries = append(c.Entries, a)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return c, nil
}

func unpackAccount(buffer []byte) (Account, error) {
	a := Account{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			a.Name, err = f.String()
		case 2:
			a.Number, err = f.Uint32()
		case 3:
			a.Balance, err = f.Sint32()
		}
		return err
	})
	return a, err
}

// Pack - encode entries in order
func (c *AccountContainer) Pack() []byte {
	buffer := []byte{}
	for _, a := range c.Entries {
		record := wire.AppendString(nil, 1, a.Name)
		record = wire.AppendUint(record, 2, uint64(a.Number))
		record = wire.AppendSint(record, 3, int64(a.Balance))
		buffer = wire.AppendBytes(buffer, fieldEntries, record)
	}
	return buffer
}

// Find - index of the entry for name/number or -1
func (c *AccountContainer) Find(name string, number uint32) int {
	for i, a := range c.Entries {
		if a.Name == name && a.Number == number {
			return i
		}
	}
	return -1
}

// Add - append a new entry
func (c *AccountContainer) Add(a Account) {
	c.Entries = append(c.Entries, a)
}
