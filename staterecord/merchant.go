// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package staterecord

import (
	"github.com/bitmark-inc/archerd/wire"
)

// Merchant - a merchant registered by its signing key
type Merchant struct {
	PublicKey string
	Name      string
	Timestamp int64
}

// MerchantContainer - all merchants stored at one address
type MerchantContainer struct {
	Entries []Merchant
}

// UnpackMerchants - decode the state bytes at a merchant address
func UnpackMerchants(buffer []byte) (*MerchantContainer, error) {
	c := &MerchantContainer{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if fieldEntries != f.Number {
			return nil
		}
		data, err := f.Data()
		if nil != err {
			return err
		}
		m := Merchant{}
		err = wire.Walk(data, func(f *wire.Field) error {
			var err error
			switch f.Number {
			case 1:
				m.PublicKey, err = f.String()
			case 2:
				m.Name, err = f.String()
			case 3:
				m.Timestamp, err = f.Sint64()
			}
			return err
		})
		if nil != err {
			return err
		}
		c.Entries = append(c.Entries, m)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return c, nil
}

// Pack - encode entries in order
func (c *MerchantContainer) Pack() []byte {
	buffer := []byte{}
	for _, m := range c.Entries {
		record := wire.AppendString(nil, 1, m.PublicKey)
		record = wire.AppendString(record, 2, m.Name)
		record = wire.AppendSint(record, 3, m.Timestamp)
		buffer = wire.AppendBytes(buffer, fieldEntries, record)
	}
	return buffer
}

// Find - index of the entry for the key or -1
func (c *MerchantContainer) Find(publicKey string) int {
	for i, m := range c.Entries {
		if m.PublicKey == publicKey {
			return i
		}
	}
	return -1
}

// Add - append a new entry
func (c *MerchantContainer) Add(m Merchant) {
	c.Entries = append(c.Entries, m)
}
