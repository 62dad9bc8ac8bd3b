// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/payload"
)

type encodeResult struct {
	Action  string `json:"action"`
	Address string `json:"address"`
	Payload string `json:"payload"`
}

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := strings.TrimSpace(c.String("name"))
	if "" == name {
		return ErrMissingName
	}

	action, err := parseAction(c.String("action"))
	if nil != err {
		return err
	}

	number, err := toUint32(c.Uint("number"))
	if nil != err {
		return err
	}
	newNumber, err := toUint32(c.Uint("new-number"))
	if nil != err {
		return err
	}
	amount := c.Int("amount")
	if amount > math.MaxInt32 || amount < math.MinInt32 {
		return ErrNumberRange
	}

	var p *payload.Payload
	switch action {
	case payload.Deposit:
		p = payload.NewDeposit(name, number, int32(amount))
	case payload.Withdraw:
		p = payload.NewWithdraw(name, number, int32(amount))
	case payload.UpdateNumber:
		p = payload.NewUpdateNumber(name, number, newNumber)
	case payload.AddAccount:
		p = payload.NewAddAccount(name, number)
	case payload.AddMerchant:
		timestamp := c.Int64("timestamp")
		if !c.IsSet("timestamp") {
			timestamp = time.Now().Unix()
		}
		p = payload.NewAddMerchant(name, timestamp)
	}

	if err := p.Validate(); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "payload: %#v\n", p)
	}

	// merchants are keyed by the signer, unknown until signing
	stateAddress := ""
	if payload.AddMerchant != action {
		stateAddress = address.AccountAddress(name)
	}

	return printJson(m.w, encodeResult{
		Action:  action.String(),
		Address: stateAddress,
		Payload: hex.EncodeToString(p.Pack()),
	})
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data, err := decodeHex(c.String("payload"))
	if nil != err {
		return err
	}

	p, err := payload.Decode(data)
	if nil != err {
		return err
	}

	return printJson(m.w, p)
}

type addressResult struct {
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Address string `json:"address"`
}

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	account := c.String("account")
	merchant := c.String("merchant")

	var kind address.Kind
	var key string
	switch {
	case "" != account && "" == merchant:
		kind, key = address.Account, account
	case "" == account && "" != merchant:
		kind, key = address.Merchant, merchant
	default:
		return ErrAccountOrMerchant
	}

	return printJson(m.w, addressResult{
		Kind:    kind.String(),
		Key:     key,
		Address: address.Calculate(kind, key),
	})
}

func parseAction(s string) (payload.Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit", "d":
		return payload.Deposit, nil
	case "withdraw", "w":
		return payload.Withdraw, nil
	case "update-number", "u":
		return payload.UpdateNumber, nil
	case "add-account", "a":
		return payload.AddAccount, nil
	case "add-merchant", "m":
		return payload.AddMerchant, nil
	default:
		return 0, ErrInvalidAction
	}
}

func toUint32(n uint) (uint32, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, ErrNumberRange
	}
	return uint32(n), nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, ErrMissingPayload
	}
	data, err := hex.DecodeString(s)
	if nil != err {
		return nil, ErrInvalidHex
	}
	return data, nil
}
