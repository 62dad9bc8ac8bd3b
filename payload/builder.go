// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

// constructors for well formed payloads

// NewDeposit - credit amount to name/number
func NewDeposit(name string, number uint32, amount int32) *Payload {
	return &Payload{
		Action: Deposit,
		Name:   name,
		Number: &number,
		Amount: &amount,
	}
}

// NewWithdraw - debit amount from name/number
func NewWithdraw(name string, number uint32, amount int32) *Payload {
	return &Payload{
		Action: Withdraw,
		Name:   name,
		Number: &number,
		Amount: &amount,
	}
}

// NewUpdateNumber - renumber an account
func NewUpdateNumber(name string, number uint32, newNumber uint32) *Payload {
	return &Payload{
		Action:    UpdateNumber,
		Name:      name,
		Number:    &number,
		NewNumber: &newNumber,
	}
}

// NewAddAccount - open a zero balance account
func NewAddAccount(name string, number uint32) *Payload {
	return &Payload{
		Action: AddAccount,
		Name:   name,
		Number: &number,
	}
}

// NewAddMerchant - register the signer as a merchant
func NewAddMerchant(name string, timestamp int64) *Payload {
	return &Payload{
		Action:    AddMerchant,
		Name:      name,
		Timestamp: &timestamp,
	}
}
