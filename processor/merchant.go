// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/staterecord"
)

// register the signer as a merchant
func (h *Handler) addMerchant(context Context, publicKey string, name string, timestamp int64) error {
	merchantAddress := address.MerchantAddress(publicKey)

	data, err := context.Get(merchantAddress)
	if nil != err {
		return fault.Internalf("state get: %s: %s", merchantAddress, err)
	}
	container, err := staterecord.UnpackMerchants(data)
	if nil != err {
		h.log.Warnf("%s at %s: %s", fault.ErrCorruptStateContainer, merchantAddress, err)
		return fault.InvalidTransactionf("%s at %s", fault.ErrCorruptStateContainer, merchantAddress)
	}

	if container.Find(publicKey) >= 0 {
		return fault.ErrMerchantExists
	}
	container.Add(staterecord.Merchant{
		PublicKey: publicKey,
		Name:      name,
		Timestamp: timestamp,
	})

	return writeState(context, merchantAddress, container.Pack())
}
