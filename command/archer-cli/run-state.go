// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/processor"
	"github.com/bitmark-inc/archerd/staterecord"
	"github.com/bitmark-inc/archerd/statestore"
)

type applyResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type stateEntry struct {
	Address   string                 `json:"address"`
	Kind      string                 `json:"kind"`
	Accounts  []staterecord.Account  `json:"accounts,omitempty"`
	Merchants []staterecord.Merchant `json:"merchants,omitempty"`
	Raw       string                 `json:"raw,omitempty"`
}

func runApply(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer := strings.TrimSpace(c.String("signer"))
	if "" == signer {
		return ErrMissingKey
	}
	data, err := decodeHex(c.String("payload"))
	if nil != err {
		return err
	}

	store, err := statestore.Open(m.state, false)
	if nil != err {
		return err
	}
	defer store.Close()

	header := &processor.Header{
		SignerPublicKey: signer,
		FamilyName:      address.FamilyName,
		FamilyVersion:   processor.FamilyVersion,
	}

	ctx, err := store.Begin()
	if nil != err {
		return err
	}

	err = processor.New(logger.New("processor")).Apply(header, data, ctx)
	if nil != err {
		ctx.Abort()
		return printApplyFailure(m.w, err)
	}

	if err := ctx.Commit(); nil != err {
		return err
	}
	return printJson(m.w, applyResult{Status: "accepted"})
}

// only a deterministic rejection is a result, anything else is a failure
func printApplyFailure(w io.Writer, err error) error {
	if !fault.IsErrInvalidTransaction(err) {
		return err
	}
	return printJson(w, applyResult{
		Status: "rejected",
		Reason: err.Error(),
	})
}

func runState(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	store, err := statestore.Open(m.state, true)
	if nil != err {
		return err
	}
	defer store.Close()

	entries, err := store.Entries(address.Namespace())
	if nil != err {
		return err
	}

	result := make([]stateEntry, 0, len(entries))
	for _, e := range entries {
		kind := address.KindOf(e.Address)
		item := stateEntry{
			Address: e.Address,
			Kind:    kind.String(),
		}
		switch kind {
		case address.Account:
			if container, err := staterecord.UnpackAccounts(e.Data); nil == err {
				item.Accounts = container.Entries
			} else {
				item.Raw = hex.EncodeToString(e.Data)
			}
		case address.Merchant:
			if container, err := staterecord.UnpackMerchants(e.Data); nil == err {
				item.Merchants = container.Entries
			} else {
				item.Raw = hex.EncodeToString(e.Data)
			}
		default:
			item.Raw = hex.EncodeToString(e.Data)
		}
		result = append(result, item)
	}

	return printJson(m.w, result)
}
