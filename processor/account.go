// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"math"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/staterecord"
)

// credit (amount > 0) or debit (amount < 0) one account
func (h *Handler) updateBalance(context Context, name string, number uint32, amount int64) error {
	accountAddress := address.AccountAddress(name)

	container, err := h.readAccounts(context, accountAddress)
	if nil != err {
		return err
	}

	i := container.Find(name, number)
	if i < 0 {
		return fault.InvalidTransactionf("account not found for %s", accountAddress)
	}

	balance := int64(container.Entries[i].Balance) + amount
	if amount < 0 && balance < 0 {
		return fault.ErrInvalidWithdrawalAmount
	}
	if balance > math.MaxInt32 || balance < math.MinInt32 {
		return fault.ErrBalanceOverflow
	}
	container.Entries[i].Balance = int32(balance)

	h.log.Debugf("balance: %s#%d: %d", name, number, balance)
	return writeState(context, accountAddress, container.Pack())
}

// move an account to a new number, balance is kept
func (h *Handler) updateNumber(context Context, name string, number uint32, newNumber uint32) error {
	accountAddress := address.AccountAddress(name)

	container, err := h.readAccounts(context, accountAddress)
	if nil != err {
		return err
	}

	i := container.Find(name, number)
	if i < 0 {
		return fault.InvalidTransactionf("account not found for %s", accountAddress)
	}
	if number != newNumber && container.Find(name, newNumber) >= 0 {
		return fault.ErrAccountNumberInUse
	}
	container.Entries[i].Number = newNumber

	return writeState(context, accountAddress, container.Pack())
}

// open a zero balance account
func (h *Handler) addAccount(context Context, name string, number uint32) error {
	accountAddress := address.AccountAddress(name)

	container, err := h.readAccounts(context, accountAddress)
	if nil != err {
		return err
	}

	if container.Find(name, number) >= 0 {
		return fault.ErrAccountExists
	}
	container.Add(staterecord.Account{
		Name:    name,
		Number:  number,
		Balance: 0,
	})

	return writeState(context, accountAddress, container.Pack())
}

// an unreadable container is a rejection, only a failed Get is internal
func (h *Handler) readAccounts(context Context, accountAddress string) (*staterecord.AccountContainer, error) {
	data, err := context.Get(accountAddress)
	if nil != err {
		return nil, fault.Internalf("state get: %s: %s", accountAddress, err)
	}
	container, err := staterecord.UnpackAccounts(data)
	if nil != err {
		h.log.Warnf("%s at %s: %s", fault.ErrCorruptStateContainer, accountAddress, err)
		return nil, fault.InvalidTransactionf("account not found for %s", accountAddress)
	}
	return container, nil
}

func writeState(context Context, stateAddress string, data []byte) error {
	err := context.Set(stateAddress, data)
	if nil != err {
		return fault.Internalf("state set: %s: %s", stateAddress, err)
	}
	return nil
}
