// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package statestore

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/archerd/fault"
)

// Context - pending writes of one transaction
//
// reads see the context's own writes first, then committed state
type Context struct {
	store   *Store
	batch   *leveldb.Batch
	pending map[string][]byte
	done    bool
}

// Begin - start a transaction, only one may be open at a time
func (s *Store) Begin() (*Context, error) {
	s.Lock()
	defer s.Unlock()

	if s.inUse {
		return nil, ErrTransactionInUse
	}
	s.inUse = true

	return &Context{
		store:   s,
		batch:   new(leveldb.Batch),
		pending: make(map[string][]byte),
	}, nil
}

// Get - data at an address, nil when absent
func (c *Context) Get(address string) ([]byte, error) {
	if c.done {
		return nil, ErrTransactionFinished
	}
	if data, ok := c.pending[address]; ok {
		return data, nil
	}
	return c.store.Get(address)
}

// Set - record a write
func (c *Context) Set(address string, data []byte) error {
	if c.done {
		return ErrTransactionFinished
	}
	value := make([]byte, len(data))
	copy(value, data)

	c.pending[address] = value
	c.batch.Put(stateKey(address), value)
	return nil
}

// Commit - write all pending data
func (c *Context) Commit() error {
	if c.done {
		return ErrTransactionFinished
	}
	defer c.finish()

	err := c.store.db.Write(c.batch, nil)
	if nil != err {
		return fault.Persistencef("state commit: %s", err)
	}
	for address, data := range c.pending {
		c.store.cache.set(address, data)
	}
	c.store.log.Debugf("committed %d addresses", len(c.pending))
	return nil
}

// Abort - discard all pending data
func (c *Context) Abort() {
	if c.done {
		return
	}
	c.finish()
}

func (c *Context) finish() {
	c.done = true
	c.batch.Reset()
	c.pending = nil

	c.store.Lock()
	c.store.inUse = false
	c.store.Unlock()
}
