// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/archerd/projection"
)

type balanceResult struct {
	Name    string `json:"name"`
	Number  uint32 `json:"number"`
	Balance int32  `json:"balance"`
}

func openProjection(m *metadata) (*projection.Store, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "database: %q\n", m.database)
	}
	return projection.Open(m.database)
}

func accountKey(c *cli.Context) (string, uint32, error) {
	name := strings.TrimSpace(c.String("name"))
	if "" == name {
		return "", 0, ErrMissingName
	}
	number, err := toUint32(c.Uint("number"))
	if nil != err {
		return "", 0, err
	}
	return name, number, nil
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, number, err := accountKey(c)
	if nil != err {
		return err
	}

	store, err := openProjection(m)
	if nil != err {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if block := c.Int64("block"); block >= 0 {
		account, err := store.AccountAt(ctx, name, number, block)
		if nil != err {
			return err
		}
		return printJson(m.w, account)
	}

	history, err := store.AccountHistory(ctx, name, number)
	if nil != err {
		return err
	}
	return printJson(m.w, history)
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, number, err := accountKey(c)
	if nil != err {
		return err
	}

	store, err := openProjection(m)
	if nil != err {
		return err
	}
	defer store.Close()

	balance, err := store.Balance(context.Background(), name, number)
	if nil != err {
		return err
	}
	return printJson(m.w, balanceResult{
		Name:    name,
		Number:  number,
		Balance: balance,
	})
}

func runMerchant(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key := strings.TrimSpace(c.String("key"))
	if "" == key {
		return ErrMissingKey
	}

	store, err := openProjection(m)
	if nil != err {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var merchant *projection.Merchant
	if block := c.Int64("block"); block >= 0 {
		merchant, err = store.MerchantAt(ctx, key, block)
	} else {
		merchant, err = store.CurrentMerchant(ctx, key)
	}
	if nil != err {
		return err
	}
	return printJson(m.w, merchant)
}

func runBlocks(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	store, err := openProjection(m)
	if nil != err {
		return err
	}
	defer store.Close()

	blocks, err := store.Blocks(context.Background(), count)
	if nil != err {
		return err
	}
	return printJson(m.w, blocks)
}
