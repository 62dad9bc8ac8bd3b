// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package statestore

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// committed values keyed by address
type valueCache struct {
	cache *cache.Cache
}

func newValueCache() *valueCache {
	return &valueCache{
		cache: cache.New(defaultExpiration, defaultTimeout),
	}
}

// a cached nil means the address is known to be empty
func (c *valueCache) get(address string) ([]byte, bool) {
	obj, found := c.cache.Get(address)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *valueCache) set(address string, value []byte) {
	c.cache.Set(address, value, cache.DefaultExpiration)
}

func (c *valueCache) clear() {
	c.cache.Flush()
}
